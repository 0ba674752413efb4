package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/newsmaint/ai"
	"github.com/poiesic/newsmaint/core"
	"github.com/poiesic/newsmaint/store"
)

// EmbedBackfill computes embeddings for articles that have an AI summary
// but no embedding yet, and writes them back one row at a time.
type EmbedBackfill struct {
	store    store.ArticleStore
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewEmbedBackfill creates the embedding-backfill job.
func NewEmbedBackfill(st store.ArticleStore, embedder ai.Embedder) *EmbedBackfill {
	return &EmbedBackfill{
		store:    st,
		embedder: embedder,
		logger:   slog.Default().With("component", "embed-backfill"),
	}
}

// Name identifies the job in progress output.
func (j *EmbedBackfill) Name() string { return "embed-backfill" }

// Tasks selects the candidate snapshot and wraps each row in a task.
func (j *EmbedBackfill) Tasks(ctx context.Context) ([]Task, error) {
	candidates, err := j.store.EmbedCandidates(ctx)
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

// process embeds the title and summary joined by a blank line and writes
// the vector back. There is no retry within a run; a failed row is picked
// up again by the next run because its embedding stays absent.
func (j *EmbedBackfill) process(ctx context.Context, c core.EmbedCandidate) Outcome {
	text := c.Title + "\n\n" + c.Summary

	vector, err := j.embedder.EmbedText(ctx, text)
	if err != nil {
		j.logger.Error("embedding failed", "id", c.ID, "err", err)
		return Failed(fmt.Sprintf("embed: %v", err))
	}
	if len(vector) == 0 {
		j.logger.Error("embedding empty", "id", c.ID)
		return Failed("embed: provider returned an empty vector")
	}

	if err := j.store.SetEmbedding(ctx, c.ID, vector); err != nil {
		j.logger.Error("embedding write failed", "id", c.ID, "err", err)
		return Failed(fmt.Sprintf("update: %v", err))
	}
	return Succeeded()
}
