package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/maheshrc27/reelflow/internal/models"
)

type fileStore struct {
	path string
}

// NewFileStore keeps the whole post set in a single JSON document on disk.
func NewFileStore(path string) PostStore {
	return &fileStore{path: path}
}

func (s *fileStore) LoadAll(ctx context.Context) ([]models.Post, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Post{}, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (s *fileStore) SaveAll(ctx context.Context, posts []models.Post) error {
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	// Write to a sibling temp file and rename so readers never see a
	// half-written set.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".posts-*.json")
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		slog.Info(err.Error())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		slog.Info(err.Error())
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		slog.Info(err.Error())
		return err
	}
	return nil
}
