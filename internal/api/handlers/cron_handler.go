package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/reelflow/internal/service"
)

// CronHandler exposes the lifecycle sweep over HTTP so an external
// scheduler (hosted cron, uptime pinger) can trigger it.
type CronHandler struct {
	lc service.LifecycleService
}

func NewCronHandler(lc service.LifecycleService) *CronHandler {
	return &CronHandler{lc: lc}
}

func (h *CronHandler) RunSweep(c *fiber.Ctx) error {
	processed, err := h.lc.Run(c.Context())
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":   false,
			"error":     "Cron job failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   fmt.Sprintf("Processed %d posts", processed),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
