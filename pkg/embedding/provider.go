package embedding

import "context"

// EmbeddingProvider turns free text into a vector. Implementations wrap a
// remote embedding service; failures surface as errors, never as partial
// vectors.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
