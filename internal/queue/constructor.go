package queue

import (
	"sync"

	"github.com/maheshrc27/reelflow/internal/repository"
	"github.com/maheshrc27/reelflow/internal/service"
)

type Queue struct {
	store     repository.PostStore
	publisher service.PublisherService
	mu        *sync.Mutex
}

func NewQueue(store repository.PostStore, publisher service.PublisherService, mu *sync.Mutex) *Queue {
	return &Queue{
		store:     store,
		publisher: publisher,
		mu:        mu,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID string `json:"post_id"`
}
