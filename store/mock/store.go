package mock

import (
	"context"
	"sync"

	"github.com/poiesic/newsmaint/core"
)

// EmbeddingWrite records one SetEmbedding call.
type EmbeddingWrite struct {
	ID     core.ID
	Vector []float32
}

// URLWrite records one SetCanonicalURL call.
type URLWrite struct {
	ID     core.ID
	URL    string
	Source string
}

// MockStore is a test double for store.ArticleStore.
// It allows custom behavior injection via function fields and records
// every write it receives.
type MockStore struct {
	// EmbedCandidatesFunc is called by EmbedCandidates if set.
	EmbedCandidatesFunc func(ctx context.Context) ([]core.EmbedCandidate, error)

	// RepairCandidatesFunc is called by RepairCandidates if set.
	RepairCandidatesFunc func(ctx context.Context, pageSize int) ([]core.RepairCandidate, error)

	// SetEmbeddingFunc is called by SetEmbedding if set.
	// If nil, the write is recorded and succeeds.
	SetEmbeddingFunc func(ctx context.Context, id core.ID, vector []float32) error

	// SetCanonicalURLFunc is called by SetCanonicalURL if set.
	// If nil, the write is recorded and succeeds.
	SetCanonicalURLFunc func(ctx context.Context, id core.ID, url, source string) error

	mu              sync.Mutex
	embeddingWrites []EmbeddingWrite
	urlWrites       []URLWrite
}

// NewMockStore creates a mock store with default behavior: no candidates,
// all writes succeed.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// EmbedCandidates returns the injected candidates, or none.
func (m *MockStore) EmbedCandidates(ctx context.Context) ([]core.EmbedCandidate, error) {
	if m.EmbedCandidatesFunc != nil {
		return m.EmbedCandidatesFunc(ctx)
	}
	return nil, nil
}

// RepairCandidates returns the injected candidates, or none.
func (m *MockStore) RepairCandidates(ctx context.Context, pageSize int) ([]core.RepairCandidate, error) {
	if m.RepairCandidatesFunc != nil {
		return m.RepairCandidatesFunc(ctx, pageSize)
	}
	return nil, nil
}

// SetEmbedding records the write unless a custom function rejects it.
func (m *MockStore) SetEmbedding(ctx context.Context, id core.ID, vector []float32) error {
	if m.SetEmbeddingFunc != nil {
		if err := m.SetEmbeddingFunc(ctx, id, vector); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embeddingWrites = append(m.embeddingWrites, EmbeddingWrite{ID: id, Vector: vector})
	return nil
}

// SetCanonicalURL records the write unless a custom function rejects it.
func (m *MockStore) SetCanonicalURL(ctx context.Context, id core.ID, url, source string) error {
	if m.SetCanonicalURLFunc != nil {
		if err := m.SetCanonicalURLFunc(ctx, id, url, source); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urlWrites = append(m.urlWrites, URLWrite{ID: id, URL: url, Source: source})
	return nil
}

// EmbeddingWrites returns the recorded SetEmbedding calls, in order.
func (m *MockStore) EmbeddingWrites() []EmbeddingWrite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EmbeddingWrite(nil), m.embeddingWrites...)
}

// URLWrites returns the recorded SetCanonicalURL calls, in order.
func (m *MockStore) URLWrites() []URLWrite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]URLWrite(nil), m.urlWrites...)
}

// Reset clears recorded writes and injected behavior.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embeddingWrites = nil
	m.urlWrites = nil
	m.EmbedCandidatesFunc = nil
	m.RepairCandidatesFunc = nil
	m.SetEmbeddingFunc = nil
	m.SetCanonicalURLFunc = nil
}
