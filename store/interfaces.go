package store

import (
	"context"

	"github.com/poiesic/newsmaint/core"
)

// ArticleStore provides the row operations the maintenance jobs need
// against the latest_news table. The jobs never insert or delete rows.
// Implementations must be thread-safe and support concurrent access.
type ArticleStore interface {
	// EmbedCandidates returns the articles needing an embedding: rows
	// where embedding is absent and ai_summary is present. The result is
	// a snapshot; an empty slice with a nil error means nothing to do.
	EmbedCandidates(ctx context.Context) ([]core.EmbedCandidate, error)

	// RepairCandidates returns the articles whose url matches a
	// redirector pattern. Rows are fetched in pages of pageSize (a value
	// <= 0 selects the default) and returned as one snapshot slice.
	RepairCandidates(ctx context.Context, pageSize int) ([]core.RepairCandidate, error)

	// SetEmbedding updates the row identified by id, setting only the
	// embedding column. Returns ErrNotFound if no row matched.
	SetEmbedding(ctx context.Context, id core.ID, vector []float32) error

	// SetCanonicalURL updates the row identified by id, setting only the
	// url and source columns. Returns ErrNotFound if no row matched.
	SetCanonicalURL(ctx context.Context, id core.ID, url, source string) error
}
