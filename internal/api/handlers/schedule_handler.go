package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	config "github.com/maheshrc27/reelflow/configs"
	"github.com/maheshrc27/reelflow/internal/models"
	"github.com/maheshrc27/reelflow/internal/queue"
	"github.com/maheshrc27/reelflow/internal/repository"
	"github.com/maheshrc27/reelflow/internal/service"
	"github.com/maheshrc27/reelflow/internal/transfer"
)

type ScheduleHandler struct {
	cfg         config.Config
	scheduler   service.SchedulerService
	vs          service.VideoSourceService
	store       repository.PostStore
	AsynqClient *asynq.Client
}

func NewScheduleHandler(
	cfg config.Config,
	scheduler service.SchedulerService,
	vs service.VideoSourceService,
	store repository.PostStore,
	asynqClient *asynq.Client) *ScheduleHandler {
	return &ScheduleHandler{
		cfg:         cfg,
		scheduler:   scheduler,
		vs:          vs,
		store:       store,
		AsynqClient: asynqClient,
	}
}

// Automate fetches a page of candidate videos and schedules the next batch
// of daily posts in one call.
func (h *ScheduleHandler) Automate(c *fiber.Ctx) error {
	var req transfer.AutomateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return fail(c, "Invalid request body")
	}

	if req.PexelsAPIKey == "" || req.AccessToken == "" || req.AccountID == "" {
		return fail(c, "Missing required credentials")
	}

	videos, err := h.vs.Search(c.Context(), req.PexelsAPIKey, h.cfg.SearchQuery, h.cfg.SearchPageSize)
	if err != nil {
		return fail(c, "Failed to fetch from Pexels")
	}

	creds := models.Credentials{AccessToken: req.AccessToken, AccountID: req.AccountID}
	posts, err := h.scheduler.Schedule(c.Context(), videos, creds, h.cfg.MaxPostsPerRun)
	if err != nil {
		return fail(c, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Scheduled %d posts", len(posts)),
		"posts":   posts,
	})
}

func (h *ScheduleHandler) SchedulePost(c *fiber.Ctx) error {
	var req transfer.SchedulePostRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return fail(c, "Invalid request body")
	}

	if req.Video == nil || req.AccessToken == "" || req.AccountID == "" {
		return fail(c, "Missing required fields")
	}

	creds := models.Credentials{AccessToken: req.AccessToken, AccountID: req.AccountID}
	post, err := h.scheduler.ScheduleOne(c.Context(), *req.Video, creds)
	if err != nil {
		return fail(c, err.Error())
	}

	// Push path: when a queue is configured, a delayed task fires at the
	// slot time so the post doesn't wait for the next sweep.
	if h.AsynqClient != nil {
		delay := time.Until(post.ScheduledFor)
		if err := queue.EnqueuePost(h.AsynqClient, queue.PublishPostPayload{PostID: post.ID}, delay); err != nil {
			slog.Info(err.Error())
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

func (h *ScheduleHandler) ListScheduledPosts(c *fiber.Ctx) error {
	posts, err := h.store.LoadAll(c.Context())
	if err != nil {
		return fail(c, "Server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"posts":   posts,
	})
}
