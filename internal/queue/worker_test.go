package queue

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

type stubPublisher struct {
	result bool
	calls  int
}

func (s *stubPublisher) Publish(ctx context.Context, post *models.Post) bool {
	s.calls++
	return s.result
}

func TestPublishPostMarksDuePost(t *testing.T) {
	store := repository.NewMemoryStore(
		models.Post{ID: "due", Status: models.PostStatusPending, ScheduledFor: time.Now().Add(-time.Minute)},
	)
	publisher := &stubPublisher{result: true}
	q := NewQueue(store, publisher, &sync.Mutex{})

	require.NoError(t, q.PublishPost(context.Background(), "due"))
	assert.Equal(t, 1, publisher.calls)

	stored, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPosted, stored[0].Status)
}

func TestPublishPostSkipsTerminalPost(t *testing.T) {
	store := repository.NewMemoryStore(
		models.Post{ID: "done", Status: models.PostStatusPosted, ScheduledFor: time.Now().Add(-time.Minute)},
	)
	publisher := &stubPublisher{result: true}
	q := NewQueue(store, publisher, &sync.Mutex{})

	require.NoError(t, q.PublishPost(context.Background(), "done"))
	assert.Zero(t, publisher.calls, "the sweep already won; the task must do nothing")
	assert.Zero(t, store.Saves)
}

func TestPublishPostUnknownID(t *testing.T) {
	store := repository.NewMemoryStore()
	publisher := &stubPublisher{result: true}
	q := NewQueue(store, publisher, &sync.Mutex{})

	require.NoError(t, q.PublishPost(context.Background(), "missing"))
	assert.Zero(t, publisher.calls)
}

func TestPublishPostRecordsFailure(t *testing.T) {
	store := repository.NewMemoryStore(
		models.Post{ID: "due", Status: models.PostStatusPending, ScheduledFor: time.Now().Add(-time.Minute)},
	)
	publisher := &stubPublisher{result: false}
	q := NewQueue(store, publisher, &sync.Mutex{})

	require.NoError(t, q.PublishPost(context.Background(), "due"))

	stored, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusFailed, stored[0].Status)
}
