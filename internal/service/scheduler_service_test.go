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

var testNow = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func newTestScheduler(store repository.PostStore) *schedulerService {
	return &schedulerService{
		store:  store,
		mu:     &sync.Mutex{},
		loc:    time.UTC,
		hour:   10,
		minute: 0,
		now:    func() time.Time { return testNow },
	}
}

func testCreds() models.Credentials {
	return models.Credentials{AccessToken: "token", AccountID: "acct-1"}
}

func candidateVideos(n int) []models.Video {
	videos := make([]models.Video, n)
	for i := range videos {
		videos[i] = models.Video{
			ID:              int64(i + 1),
			URL:             "https://videos.example/" + string(rune('a'+i)) + ".mp4",
			AttributionName: "Creator",
		}
	}
	return videos
}

func TestScheduleEmptyStore(t *testing.T) {
	store := repository.NewMemoryStore()
	s := newTestScheduler(store)

	posts, err := s.Schedule(context.Background(), candidateVideos(3), testCreds(), 7)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	for i, p := range posts {
		want := time.Date(2025, time.March, 11+i, 10, 0, 0, 0, time.UTC)
		assert.True(t, p.ScheduledFor.Equal(want), "slot %d: got %v want %v", i, p.ScheduledFor, want)
		assert.Equal(t, models.PostStatusPending, p.Status)
		assert.Equal(t, testCreds(), p.Credentials)
		assert.NotEmpty(t, p.ID)
	}

	// slots increase by exactly one day
	for i := 1; i < len(posts); i++ {
		assert.Equal(t, 24*time.Hour, posts[i].ScheduledFor.Sub(posts[i-1].ScheduledFor))
	}

	// distinct ids
	assert.NotEqual(t, posts[0].ID, posts[1].ID)

	stored, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestScheduleRespectsMaxCount(t *testing.T) {
	store := repository.NewMemoryStore()
	s := newTestScheduler(store)

	posts, err := s.Schedule(context.Background(), candidateVideos(5), testCreds(), 2)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestScheduleMaxCountLargerThanCandidates(t *testing.T) {
	store := repository.NewMemoryStore()
	s := newTestScheduler(store)

	posts, err := s.Schedule(context.Background(), candidateVideos(2), testCreds(), 7)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestScheduleZeroCandidatesIsNoOp(t *testing.T) {
	existing := models.Post{
		ID:           "existing",
		Status:       models.PostStatusPending,
		ScheduledFor: time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC),
		Credentials:  testCreds(),
	}
	store := repository.NewMemoryStore(existing)
	s := newTestScheduler(store)

	posts, err := s.Schedule(context.Background(), nil, testCreds(), 7)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, store.Saves, "no-op schedule must not persist")

	stored, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, existing.ID, stored[0].ID)
}

func TestScheduleAnchorsOnLatestPending(t *testing.T) {
	latest := time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC)
	store := repository.NewMemoryStore(
		models.Post{ID: "p1", Status: models.PostStatusPending, ScheduledFor: latest.AddDate(0, 0, -1)},
		models.Post{ID: "p2", Status: models.PostStatusPending, ScheduledFor: latest},
		models.Post{ID: "p3", Status: models.PostStatusPosted, ScheduledFor: latest.AddDate(0, 0, 5)},
	)
	s := newTestScheduler(store)

	posts, err := s.Schedule(context.Background(), candidateVideos(2), testCreds(), 7)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// terminal posts don't anchor; extension starts after the latest pending slot
	assert.True(t, posts[0].ScheduledFor.Equal(latest.AddDate(0, 0, 1)))
	assert.True(t, posts[1].ScheduledFor.Equal(latest.AddDate(0, 0, 2)))
}

func TestScheduleMissingCredentials(t *testing.T) {
	s := newTestScheduler(repository.NewMemoryStore())

	_, err := s.Schedule(context.Background(), candidateVideos(1), models.Credentials{}, 7)
	assert.Error(t, err)
}

func TestScheduleOneEmptyStore(t *testing.T) {
	store := repository.NewMemoryStore()
	s := newTestScheduler(store)

	post, err := s.ScheduleOne(context.Background(), candidateVideos(1)[0], testCreds())
	require.NoError(t, err)

	want := time.Date(2025, time.March, 11, 10, 0, 0, 0, time.UTC)
	assert.True(t, post.ScheduledFor.Equal(want))
	assert.Equal(t, models.PostStatusPending, post.Status)

	stored, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestScheduleOneExtendsLatestPending(t *testing.T) {
	latest := time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC)
	store := repository.NewMemoryStore(
		models.Post{ID: "p1", Status: models.PostStatusPending, ScheduledFor: latest},
	)
	s := newTestScheduler(store)

	post, err := s.ScheduleOne(context.Background(), candidateVideos(1)[0], testCreds())
	require.NoError(t, err)
	assert.True(t, post.ScheduledFor.Equal(latest.AddDate(0, 0, 1)))
}

func TestScheduleOneMissingVideo(t *testing.T) {
	s := newTestScheduler(repository.NewMemoryStore())

	_, err := s.ScheduleOne(context.Background(), models.Video{}, testCreds())
	assert.Error(t, err)
}
