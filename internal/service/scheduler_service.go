package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	config "github.com/maheshrc27/reelflow/configs"
	"github.com/maheshrc27/reelflow/internal/models"
	"github.com/maheshrc27/reelflow/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type SchedulerService interface {
	Schedule(ctx context.Context, candidates []models.Video, creds models.Credentials, maxCount int) ([]models.Post, error)
	ScheduleOne(ctx context.Context, video models.Video, creds models.Credentials) (models.Post, error)
}

type schedulerService struct {
	store  repository.PostStore
	mu     *sync.Mutex
	loc    *time.Location
	hour   int
	minute int
	now    func() time.Time
}

func NewSchedulerService(cfg config.Config, store repository.PostStore, mu *sync.Mutex) SchedulerService {
	loc, err := time.LoadLocation(cfg.ScheduleTimezone)
	if err != nil {
		slog.Info(err.Error())
		loc = time.UTC
	}
	return &schedulerService{
		store:  store,
		mu:     mu,
		loc:    loc,
		hour:   cfg.ScheduleHour,
		minute: cfg.ScheduleMinute,
		now:    time.Now,
	}
}

// Schedule assigns the first min(len(candidates), maxCount) candidates one
// daily slot each, extending from the latest pending slot (or from now if
// none are pending), then appends the new posts to the stored set.
func (s *schedulerService) Schedule(ctx context.Context, candidates []models.Video, creds models.Credentials, maxCount int) ([]models.Post, error) {
	if creds.AccessToken == "" || creds.AccountID == "" {
		err := errors.New("missing required credentials")
		slog.Info(err.Error())
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	count := len(candidates)
	if maxCount < count {
		count = maxCount
	}
	if count <= 0 {
		return []models.Post{}, nil
	}

	anchor := latestPendingSlot(posts, s.now())

	newPosts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		id, err := gonanoid.New()
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		newPosts = append(newPosts, models.Post{
			ID:           id,
			Video:        candidates[i],
			ScheduledFor: s.slotAfter(anchor, i+1),
			Status:       models.PostStatusPending,
			Credentials:  creds,
		})
	}

	if err := s.store.SaveAll(ctx, append(posts, newPosts...)); err != nil {
		return nil, err
	}

	slog.Info("posts scheduled", "count", len(newPosts))
	return newPosts, nil
}

// ScheduleOne places a single video one day after the latest pending slot.
func (s *schedulerService) ScheduleOne(ctx context.Context, video models.Video, creds models.Credentials) (models.Post, error) {
	if video.URL == "" {
		err := errors.New("missing video payload")
		slog.Info(err.Error())
		return models.Post{}, err
	}
	if creds.AccessToken == "" || creds.AccountID == "" {
		err := errors.New("missing required credentials")
		slog.Info(err.Error())
		return models.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.store.LoadAll(ctx)
	if err != nil {
		return models.Post{}, err
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return models.Post{}, err
	}

	post := models.Post{
		ID:           id,
		Video:        video,
		ScheduledFor: s.slotAfter(latestPendingSlot(posts, s.now()), 1),
		Status:       models.PostStatusPending,
		Credentials:  creds,
	}

	if err := s.store.SaveAll(ctx, append(posts, post)); err != nil {
		return models.Post{}, err
	}

	slog.Info("post scheduled", "post_id", post.ID, "scheduled_for", post.ScheduledFor)
	return post, nil
}

// slotAfter adds whole calendar days to the anchor and normalizes the
// result to the configured time-of-day, so DST transitions keep the same
// wall-clock publish time.
func (s *schedulerService) slotAfter(anchor time.Time, days int) time.Time {
	t := anchor.In(s.loc).AddDate(0, 0, days)
	return time.Date(t.Year(), t.Month(), t.Day(), s.hour, s.minute, 0, 0, s.loc)
}

func latestPendingSlot(posts []models.Post, now time.Time) time.Time {
	anchor := now
	found := false
	for _, p := range posts {
		if p.Status != models.PostStatusPending {
			continue
		}
		if !found || p.ScheduledFor.After(anchor) {
			anchor = p.ScheduledFor
			found = true
		}
	}
	return anchor
}
