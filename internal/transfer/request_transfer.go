package transfer

import "github.com/maheshrc27/reelflow/internal/models"

type FetchVideosRequest struct {
	PexelsAPIKey string `json:"pexelsApiKey"`
}

type AutomateRequest struct {
	PexelsAPIKey string `json:"pexelsApiKey"`
	AccessToken  string `json:"accessToken"`
	AccountID    string `json:"accountId"`
}

type SchedulePostRequest struct {
	Video       *models.Video `json:"video"`
	AccessToken string        `json:"accessToken"`
	AccountID   string        `json:"accountId"`
}
