package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const DefaultBaseURL = "https://api.x.com/2"

// Client posts messages through the platform v2 API.
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	accessToken string
	userAgent   string
}

var _ Publisher = (*Client)(nil)

func NewClient(accessToken, userAgent string, httpClient *http.Client) *Client {
	return &Client{
		BaseURL:     DefaultBaseURL,
		HTTPClient:  httpClient,
		accessToken: accessToken,
		userAgent:   userAgent,
	}
}

type postRequest struct {
	Text string `json:"text"`
}

type postResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

func (c *Client) Post(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(postRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to encode post request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/tweets", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create post request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return "", fmt.Errorf("%w: status %d", ErrForbidden, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("post failed with status %d: %s", resp.StatusCode, detail)
	}

	var parsed postResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode post response: %w", err)
	}
	if parsed.Data.ID == "" {
		return "", fmt.Errorf("post succeeded but response carried no ID")
	}

	slog.Info("Post published", "post_id", parsed.Data.ID)
	return parsed.Data.ID, nil
}
