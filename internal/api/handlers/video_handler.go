package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/reelflow/configs"
	"github.com/maheshrc27/reelflow/internal/service"
	"github.com/maheshrc27/reelflow/internal/transfer"
)

type VideoHandler struct {
	cfg config.Config
	vs  service.VideoSourceService
}

func NewVideoHandler(cfg config.Config, vs service.VideoSourceService) *VideoHandler {
	return &VideoHandler{cfg: cfg, vs: vs}
}

func (h *VideoHandler) FetchVideos(c *fiber.Ctx) error {
	var req transfer.FetchVideosRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return fail(c, "Invalid request body")
	}

	if req.PexelsAPIKey == "" {
		return fail(c, "Pexels API key required")
	}

	videos, err := h.vs.Search(c.Context(), req.PexelsAPIKey, h.cfg.SearchQuery, 15)
	if err != nil {
		return fail(c, "Failed to fetch from Pexels")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"videos":  videos,
	})
}
