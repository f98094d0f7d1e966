package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/reelflow/internal/models"
	"github.com/maheshrc27/reelflow/internal/repository"
)

type LifecycleService interface {
	// Run sweeps the store once: every pending post whose slot has passed
	// is published sequentially in storage order and moved to a terminal
	// status. Returns the number of posts processed.
	Run(ctx context.Context) (int, error)
}

type lifecycleService struct {
	store     repository.PostStore
	publisher PublisherService
	mu        *sync.Mutex
	now       func() time.Time
}

func NewLifecycleService(store repository.PostStore, publisher PublisherService, mu *sync.Mutex) LifecycleService {
	return &lifecycleService{
		store:     store,
		publisher: publisher,
		mu:        mu,
		now:       time.Now,
	}
}

func (s *lifecycleService) Run(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	processed := 0

	for i := range posts {
		if !posts[i].Due(now) {
			continue
		}

		slog.Info("publishing due post", "post_id", posts[i].ID, "scheduled_for", posts[i].ScheduledFor)

		if s.publisher.Publish(ctx, &posts[i]) {
			posts[i].Status = models.PostStatusPosted
		} else {
			posts[i].Status = models.PostStatusFailed
		}
		processed++

		slog.Info("post processed", "post_id", posts[i].ID, "status", posts[i].Status)
	}

	if err := s.store.SaveAll(ctx, posts); err != nil {
		return processed, err
	}
	return processed, nil
}
