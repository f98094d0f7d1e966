package job

import (
	"context"
	"log/slog"

	"github.com/maheshrc27/reelflow/internal/service"
)

// PublishJob is the cron entry point that sweeps the store for due posts.
type PublishJob struct {
	lc service.LifecycleService
}

func NewPublishJob(lc service.LifecycleService) *PublishJob {
	return &PublishJob{lc: lc}
}

func (j *PublishJob) Sweep() {
	ctx := context.Background()

	processed, err := j.lc.Run(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	slog.Info("sweep complete", "processed", processed)
}
