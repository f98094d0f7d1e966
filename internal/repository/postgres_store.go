package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/maheshrc27/reelflow/internal/models"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore binds the post set to a single table:
//
//	CREATE TABLE scheduled_posts (
//		position      INT PRIMARY KEY,
//		id            TEXT NOT NULL,
//		video         JSONB NOT NULL,
//		scheduled_for TIMESTAMPTZ NOT NULL,
//		status        TEXT NOT NULL,
//		access_token  TEXT NOT NULL,
//		account_id    TEXT NOT NULL
//	);
//
// The position column preserves storage order; SaveAll rewrites the table
// in one transaction to keep full-replace semantics.
func NewPostgresStore(db *sql.DB) PostStore {
	return &postgresStore{db: db}
}

func (s *postgresStore) LoadAll(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT id, video, scheduled_for, status, access_token, account_id
		FROM scheduled_posts
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		var video []byte
		err := rows.Scan(&post.ID, &video, &post.ScheduledFor, &post.Status, &post.Credentials.AccessToken, &post.Credentials.AccountID)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		if err := json.Unmarshal(video, &post.Video); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

func (s *postgresStore) SaveAll(ctx context.Context, posts []models.Post) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scheduled_posts`); err != nil {
		slog.Info(err.Error())
		return err
	}

	query := `
		INSERT INTO scheduled_posts (position, id, video, scheduled_for, status, access_token, account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, post := range posts {
		video, err := json.Marshal(post.Video)
		if err != nil {
			slog.Info(err.Error())
			return err
		}
		_, err = tx.ExecContext(ctx, query, i, post.ID, video, post.ScheduledFor, post.Status, post.Credentials.AccessToken, post.Credentials.AccountID)
		if err != nil {
			slog.Info(err.Error())
			return err
		}
	}

	return tx.Commit()
}
