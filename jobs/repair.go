package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/newsmaint/core"
	"github.com/poiesic/newsmaint/store"
)

// Resolver follows a short link to its destination URL.
type Resolver interface {
	Resolve(ctx context.Context, url string) (string, error)
}

// URLRepair replaces redirector URLs with their destination URLs and
// derives the source hostname from the result.
type URLRepair struct {
	store    store.ArticleStore
	resolver Resolver
	pageSize int
	dryRun   bool
	logger   *slog.Logger
}

// NewURLRepair creates the URL-repair job.
// pageSize: selector page size; <= 0 selects the store default.
// dryRun: classify and report only, never write.
func NewURLRepair(st store.ArticleStore, resolver Resolver, pageSize int, dryRun bool) *URLRepair {
	return &URLRepair{
		store:    st,
		resolver: resolver,
		pageSize: pageSize,
		dryRun:   dryRun,
		logger:   slog.Default().With("component", "url-repair"),
	}
}

// Name identifies the job in progress output.
func (j *URLRepair) Name() string { return "url-repair" }

// Tasks selects the candidate snapshot and wraps each row in a task.
func (j *URLRepair) Tasks(ctx context.Context) ([]Task, error) {
	candidates, err := j.store.RepairCandidates(ctx, j.pageSize)
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, len(candidates))
	for i, c := range candidates {
		c := c
		tasks[i] = Task{
			ID:  c.ID,
			Run: func(ctx context.Context) Outcome { return j.process(ctx, c) },
		}
	}
	return tasks, nil
}

// process extracts the canonical URL, derives the source hostname and
// writes both back. Share-param links are resolved locally; short links
// need a network round trip.
func (j *URLRepair) process(ctx context.Context, c core.RepairCandidate) Outcome {
	var canonical string

	switch core.ClassifyRedirector(c.URL) {
	case core.RedirectorShareParam:
		canonical = core.ShareParamTarget(c.URL)
		if canonical == "" {
			return Skipped("no url parameter")
		}

	case core.RedirectorShortLink:
		resolved, err := j.resolver.Resolve(ctx, c.URL)
		if err != nil {
			// An unreachable redirector is a transient condition,
			// not data corruption. Leave the row for a later run.
			j.logger.Warn("resolve failed", "id", c.ID, "url", c.URL, "err", err)
			return Skipped(fmt.Sprintf("resolve: %v", err))
		}
		if resolved == c.URL {
			return Skipped("resolved to itself")
		}
		canonical = resolved

	default:
		return Skipped("not a redirector")
	}

	source, err := core.Hostname(canonical)
	if err != nil {
		j.logger.Error("bad canonical url", "id", c.ID, "canonical", canonical, "err", err)
		return Failed(fmt.Sprintf("canonical: %v", err))
	}

	if j.dryRun {
		return Outcome{
			Status: StatusSucceeded,
			Reason: fmt.Sprintf("dry-run: would set url=%s source=%s", canonical, source),
		}
	}

	if err := j.store.SetCanonicalURL(ctx, c.ID, canonical, source); err != nil {
		j.logger.Error("url write failed", "id", c.ID, "err", err)
		return Failed(fmt.Sprintf("update: %v", err))
	}
	return Succeeded()
}
