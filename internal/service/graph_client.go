package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/maheshrc27/reelflow/internal/models"
)

// Container processing states reported by the media service. Anything else
// means the container is still processing.
const (
	ContainerStatusFinished = "FINISHED"
	ContainerStatusError    = "ERROR"
)

// MediaAPI is the three-operation surface of the external publish service.
// Implementations must report a missing identifier as an error even when
// the transport call itself succeeded.
type MediaAPI interface {
	CreateContainer(ctx context.Context, videoURL, caption string, creds models.Credentials) (string, error)
	ContainerStatus(ctx context.Context, containerID string, creds models.Credentials) (string, error)
	Publish(ctx context.Context, containerID string, creds models.Credentials) (string, error)
}

type graphClient struct {
	baseURL string
	client  *http.Client
}

// NewGraphClient talks to the Graph API media endpoints for a target
// account: create a REELS container, read its processing status, publish it.
func NewGraphClient(baseURL string, client *http.Client) MediaAPI {
	if client == nil {
		client = http.DefaultClient
	}
	return &graphClient{baseURL: baseURL, client: client}
}

func (g *graphClient) CreateContainer(ctx context.Context, videoURL, caption string, creds models.Credentials) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media", g.baseURL, creds.AccountID)

	payload := map[string]interface{}{
		"media_type":   "REELS",
		"video_url":    videoURL,
		"caption":      caption,
		"access_token": creds.AccessToken,
	}

	id, err := g.postForID(ctx, endpoint, payload)
	if err != nil {
		return "", fmt.Errorf("failed to create media container: %w", err)
	}
	return id, nil
}

func (g *graphClient) ContainerStatus(ctx context.Context, containerID string, creds models.Credentials) (string, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=status_code&access_token=%s",
		g.baseURL, containerID, url.QueryEscape(creds.AccessToken))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code from media service: %d", resp.StatusCode)
	}

	var result struct {
		StatusCode string `json:"status_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}

	return result.StatusCode, nil
}

func (g *graphClient) Publish(ctx context.Context, containerID string, creds models.Credentials) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media_publish", g.baseURL, creds.AccountID)

	payload := map[string]interface{}{
		"creation_id":  containerID,
		"access_token": creds.AccessToken,
	}

	id, err := g.postForID(ctx, endpoint, payload)
	if err != nil {
		return "", fmt.Errorf("failed to publish media: %w", err)
	}
	return id, nil
}

func (g *graphClient) postForID(ctx context.Context, endpoint string, payload map[string]interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Info("media service rejected request", "status", resp.StatusCode, "body", string(respBody))
		return "", fmt.Errorf("unexpected status code from media service: %d", resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}

	if result.ID == "" {
		return "", fmt.Errorf("no media ID returned from media service")
	}
	return result.ID, nil
}
