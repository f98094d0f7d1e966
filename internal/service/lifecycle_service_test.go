package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/maheshrc27/reelflow/internal/models"
	"github.com/maheshrc27/reelflow/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	results map[string]bool
	calls   []string
}

func (f *fakePublisher) Publish(ctx context.Context, post *models.Post) bool {
	f.calls = append(f.calls, post.ID)
	return f.results[post.ID]
}

func TestRunProcessesOnlyDuePosts(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	store := repository.NewMemoryStore(
		models.Post{ID: "due-1", Status: models.PostStatusPending, ScheduledFor: now.Add(-time.Hour)},
		models.Post{ID: "later", Status: models.PostStatusPending, ScheduledFor: now.Add(time.Hour)},
		models.Post{ID: "due-2", Status: models.PostStatusPending, ScheduledFor: now.Add(-2 * time.Hour)},
	)

	publisher := &fakePublisher{results: map[string]bool{"due-1": true, "due-2": false}}
	lc := &lifecycleService{
		store:     store,
		publisher: publisher,
		mu:        &sync.Mutex{},
		now:       func() time.Time { return now },
	}

	processed, err := lc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	// storage order, not due order
	assert.Equal(t, []string{"due-1", "due-2"}, publisher.calls)

	stored, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 3)

	byID := map[string]models.Post{}
	for _, p := range stored {
		byID[p.ID] = p
	}
	assert.Equal(t, models.PostStatusPosted, byID["due-1"].Status)
	assert.Equal(t, models.PostStatusFailed, byID["due-2"].Status)
	assert.Equal(t, models.PostStatusPending, byID["later"].Status)
}

func TestRunSkipsTerminalPosts(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	store := repository.NewMemoryStore(
		models.Post{ID: "posted", Status: models.PostStatusPosted, ScheduledFor: now.Add(-time.Hour)},
		models.Post{ID: "failed", Status: models.PostStatusFailed, ScheduledFor: now.Add(-time.Hour)},
	)

	publisher := &fakePublisher{results: map[string]bool{}}
	lc := &lifecycleService{
		store:     store,
		publisher: publisher,
		mu:        &sync.Mutex{},
		now:       func() time.Time { return now },
	}

	processed, err := lc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Empty(t, publisher.calls)
}

func TestRunIsIdempotent(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	store := repository.NewMemoryStore(
		models.Post{ID: "due", Status: models.PostStatusPending, ScheduledFor: now.Add(-time.Hour)},
	)

	publisher := &fakePublisher{results: map[string]bool{"due": true}}
	lc := &lifecycleService{
		store:     store,
		publisher: publisher,
		mu:        &sync.Mutex{},
		now:       func() time.Time { return now },
	}

	processed, err := lc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	processed, err = lc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed, "terminal posts must never be revisited")
	assert.Len(t, publisher.calls, 1)
}
