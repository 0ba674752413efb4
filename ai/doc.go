// Package ai defines the embedding-provider abstraction used by the
// maintenance jobs.
//
// The Embedder interface hides the provider behind a single EmbedText
// call. The openai subpackage implements it against OpenAI-compatible
// embedding APIs; the mock subpackage provides a deterministic test
// double.
//
// Configuration uses functional options:
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(key),
//	    ai.WithModel("text-embedding-3-small"),
//	)
//	embedder, err := openai.NewEmbedder(cfg)
package ai
