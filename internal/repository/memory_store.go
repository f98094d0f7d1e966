package repository

import (
	"context"
	"sync"

	"github.com/maheshrc27/reelflow/internal/models"
)

// MemoryStore is an in-memory PostStore for tests and local development.
type MemoryStore struct {
	mu    sync.Mutex
	posts []models.Post

	// Saves counts SaveAll calls, for asserting no-op persistence in tests.
	Saves int
}

func NewMemoryStore(posts ...models.Post) *MemoryStore {
	return &MemoryStore{posts: append([]models.Post{}, posts...)}
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Post{}, s.posts...), nil
}

func (s *MemoryStore) SaveAll(ctx context.Context, posts []models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append([]models.Post{}, posts...)
	s.Saves++
	return nil
}
