package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	config "github.com/maheshrc27/reelflow/configs"
	"github.com/maheshrc27/reelflow/internal/models"
)

type PublisherService interface {
	// Publish drives one post through container creation, processing poll
	// and publish. It returns true on success and false on any failure;
	// errors never escape, every failure path is logged with its phase.
	Publish(ctx context.Context, post *models.Post) bool
}

type publisherService struct {
	api             MediaAPI
	captionTemplate string
	pollInterval    time.Duration
	pollMaxAttempts int
	sleep           func(ctx context.Context, d time.Duration) error
}

func NewPublisherService(cfg config.Config, api MediaAPI) PublisherService {
	return &publisherService{
		api:             api,
		captionTemplate: cfg.CaptionTemplate,
		pollInterval:    cfg.PollInterval,
		pollMaxAttempts: cfg.PollMaxAttempts,
		sleep:           sleepContext,
	}
}

func (s *publisherService) Publish(ctx context.Context, post *models.Post) bool {
	if post == nil || post.Video.URL == "" {
		slog.Info("publish rejected: missing video payload")
		return false
	}
	if post.Credentials.AccessToken == "" || post.Credentials.AccountID == "" {
		slog.Info("publish rejected: missing required credentials", "post_id", post.ID)
		return false
	}

	caption := strings.ReplaceAll(s.captionTemplate, "{attribution}", post.Video.AttributionName)

	containerID, err := s.api.CreateContainer(ctx, post.Video.URL, caption, post.Credentials)
	if err != nil {
		slog.Info("container creation failed", "post_id", post.ID, "error", err)
		return false
	}
	slog.Info("container created", "post_id", post.ID, "container_id", containerID)

	if !s.waitForProcessing(ctx, post, containerID) {
		return false
	}

	publishedID, err := s.api.Publish(ctx, containerID, post.Credentials)
	if err != nil {
		slog.Info("publish failed", "post_id", post.ID, "container_id", containerID, "error", err)
		return false
	}

	slog.Info("post published", "post_id", post.ID, "published_id", publishedID)
	return true
}

// waitForProcessing polls the container status at a fixed interval until it
// reaches FINISHED, fails on ERROR, or runs out of attempts. Unknown status
// values keep the poll going.
func (s *publisherService) waitForProcessing(ctx context.Context, post *models.Post, containerID string) bool {
	ready := false
	for attempt := 0; attempt < s.pollMaxAttempts && !ready; attempt++ {
		if err := s.sleep(ctx, s.pollInterval); err != nil {
			slog.Info("processing poll interrupted", "post_id", post.ID, "error", err)
			return false
		}

		status, err := s.api.ContainerStatus(ctx, containerID, post.Credentials)
		if err != nil {
			slog.Info("status poll failed", "post_id", post.ID, "container_id", containerID, "error", err)
			return false
		}

		switch status {
		case ContainerStatusFinished:
			ready = true
		case ContainerStatusError:
			slog.Info("video processing error", "post_id", post.ID, "container_id", containerID)
			return false
		}
	}

	if !ready {
		slog.Info("video processing timeout", "post_id", post.ID, "container_id", containerID, "attempts", s.pollMaxAttempts)
		return false
	}
	return true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
