package ai

import "context"

// Embedder generates vector embeddings from text.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector has the fixed dimensionality of the configured
	// model. Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}
