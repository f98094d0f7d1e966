package repository

import (
	"context"

	"github.com/maheshrc27/reelflow/internal/models"
)

// PostStore is the durable, ordered collection of scheduled posts. It is
// the sole source of truth: callers re-load before deriving anything from
// the set and write back the whole set at once.
//
// LoadAll returns records in storage order and must return an empty slice,
// not an error, when no data exists yet. SaveAll replaces the entire
// record set; concurrent load-then-save callers are last-writer-wins.
type PostStore interface {
	LoadAll(ctx context.Context) ([]models.Post, error)
	SaveAll(ctx context.Context, posts []models.Post) error
}
