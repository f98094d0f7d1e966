package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/reelflow/internal/models"
)

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return q.PublishPost(ctx, payload.PostID)
}

// PublishPost publishes a single post by id. It re-checks the stored status
// so it stays idempotent against the periodic sweep: whichever runs first
// wins, the other sees a terminal status and does nothing.
func (q *Queue) PublishPost(ctx context.Context, postID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	posts, err := q.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range posts {
		if posts[i].ID == postID {
			idx = i
			break
		}
	}
	if idx == -1 {
		slog.Info("queued post not found", "post_id", postID)
		return nil
	}

	if !posts[idx].Due(time.Now()) {
		slog.Info("queued post not eligible, skipping", "post_id", postID, "status", posts[idx].Status)
		return nil
	}

	if q.publisher.Publish(ctx, &posts[idx]) {
		posts[idx].Status = models.PostStatusPosted
	} else {
		posts[idx].Status = models.PostStatusFailed
	}

	slog.Info("queued post processed", "post_id", postID, "status", posts[idx].Status)
	return q.store.SaveAll(ctx, posts)
}
