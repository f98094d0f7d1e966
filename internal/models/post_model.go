package models

import "time"

// Video is the immutable reference to the source media a post publishes.
// Everything here is carried through untouched; the pipeline only reads
// URL and AttributionName.
type Video struct {
	ID              int64  `json:"id"`
	URL             string `json:"url"`
	Thumbnail       string `json:"thumbnail"`
	Duration        int    `json:"duration"`
	AttributionName string `json:"attributionName"`
}

// Credentials are opaque to the core: an access token plus the target
// account identifier, passed through to the media service as-is.
type Credentials struct {
	AccessToken string `json:"accessToken"`
	AccountID   string `json:"accountId"`
}

type Post struct {
	ID           string      `json:"id"`
	Video        Video       `json:"video"`
	ScheduledFor time.Time   `json:"scheduledFor"`
	Status       string      `json:"status"` // pending, posted, failed
	Credentials  Credentials `json:"credentials"`
}

const (
	PostStatusPending = "pending"
	PostStatusPosted  = "posted"
	PostStatusFailed  = "failed"
)

// Due reports whether the post is eligible for a publish attempt.
func (p *Post) Due(now time.Time) bool {
	return p.Status == PostStatusPending && !p.ScheduledFor.After(now)
}
