package core

import (
	"fmt"
	"net/url"
	"strings"
)

// RedirectorKind classifies a URL by the kind of redirector it is.
type RedirectorKind int

const (
	// RedirectorNone means the URL is not a recognized redirector.
	RedirectorNone RedirectorKind = iota

	// RedirectorShareParam is a google.com/share or google.com/url link
	// that carries its destination in the "url" query parameter.
	// Resolving it requires no network call.
	RedirectorShareParam

	// RedirectorShortLink is a share.google short link. The destination
	// is only discoverable by following its redirect chain.
	RedirectorShortLink
)

// ClassifyRedirector decides whether raw is a redirector URL and, if so,
// which kind. Share-param links are checked before short links.
// Unparseable input is treated as not a redirector.
func ClassifyRedirector(raw string) RedirectorKind {
	u, err := url.Parse(raw)
	if err != nil {
		return RedirectorNone
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case isGoogleHost(host) && hasRedirectPath(u.Path):
		return RedirectorShareParam
	case host == "share.google":
		return RedirectorShortLink
	}
	return RedirectorNone
}

func isGoogleHost(host string) bool {
	return host == "google.com" || strings.HasSuffix(host, ".google.com")
}

func hasRedirectPath(path string) bool {
	return strings.HasPrefix(path, "/share") || strings.HasPrefix(path, "/url")
}

// ShareParamTarget extracts the destination carried in the "url" query
// parameter of a share-param redirector. The first occurrence wins and the
// value is percent-decoded exactly once. Returns "" when the parameter is
// missing or the URL does not parse.
func ShareParamTarget(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("url")
}

// Hostname returns the hostname component of raw.
// An unparseable URL or one without a host is an error.
func Hostname(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("url %q has no hostname", raw)
	}
	return host, nil
}
