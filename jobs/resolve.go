// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package jobs

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	// maxRedirects caps the redirect chain when resolving short links.
	maxRedirects = 10

	// resolveTimeout bounds one short-link resolution end to end.
	resolveTimeout = 10 * time.Second
)

// RedirectResolver discovers the destination of a short link by issuing a
// HEAD request and following its redirect chain.
type RedirectResolver struct {
	client *http.Client
}

// NewRedirectResolver creates a resolver with the redirect cap and timeout
// applied.
func NewRedirectResolver() *RedirectResolver {
	return &RedirectResolver{
		client: &http.Client{
			Timeout: resolveTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// Resolve returns the final request URL after redirects. A final status of
// 400 or above is an error, as is exceeding the redirect cap.
func (r *RedirectResolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "newsmaint/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("HTTP %d resolving %s", resp.StatusCode, rawURL)
	}

	return resp.Request.URL.String(), nil
}
