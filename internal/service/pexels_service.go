package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cenkalti/backoff/v4"
	config "github.com/maheshrc27/reelflow/configs"
	"github.com/maheshrc27/reelflow/internal/models"
	"github.com/maheshrc27/reelflow/internal/transfer"
	"github.com/maheshrc27/reelflow/pkg/retry"
)

// VideoSourceService lists candidate videos from the stock footage
// provider. The API key arrives with the request and is passed through.
type VideoSourceService interface {
	Search(ctx context.Context, apiKey, query string, perPage int) ([]models.Video, error)
}

type pexelsService struct {
	baseURL  string
	client   *http.Client
	retryCfg retry.Config
}

func NewPexelsService(cfg config.Config, client *http.Client) VideoSourceService {
	if client == nil {
		client = http.DefaultClient
	}
	return &pexelsService{
		baseURL:  cfg.PexelsAPIBase,
		client:   client,
		retryCfg: retry.DefaultConfig(),
	}
}

func (s *pexelsService) Search(ctx context.Context, apiKey, query string, perPage int) ([]models.Video, error) {
	if apiKey == "" {
		err := errors.New("pexels API key required")
		slog.Info(err.Error())
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/videos/search?query=%s&per_page=%d&orientation=portrait",
		s.baseURL, url.QueryEscape(query), perPage)

	var result transfer.PexelsSearchResponse

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("error creating request: %w", err))
		}
		req.Header.Set("Authorization", apiKey)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request error: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("pexels returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("failed to fetch from Pexels: status %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode search response: %w", err))
		}
		return nil
	}

	if err := retry.Do(ctx, "pexels search", operation, s.retryCfg); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	videos := make([]models.Video, 0, len(result.Videos))
	for _, v := range result.Videos {
		link := ""
		if len(v.VideoFiles) > 0 {
			link = v.VideoFiles[0].Link
		}
		videos = append(videos, models.Video{
			ID:              v.ID,
			URL:             link,
			Thumbnail:       v.Image,
			Duration:        v.Duration,
			AttributionName: v.User.Name,
		})
	}
	return videos, nil
}
