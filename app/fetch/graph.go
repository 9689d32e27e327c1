package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/erdmkk/football-gossip-bot/app/publish"
)

// UserInfo describes a resolved platform account.
type UserInfo struct {
	ID        string
	Name      string
	Handle    string
	Followers int64
}

// GraphClient is the social-graph capability the follow tracker needs.
type GraphClient interface {
	ResolveUser(ctx context.Context, handle string) (*UserInfo, error)
	Following(ctx context.Context, userID string) ([]string, error)
	UserInfo(ctx context.Context, userID string) (*UserInfo, error)
}

// HTTPGraphClient reads the social graph through the platform v2 API.
type HTTPGraphClient struct {
	BaseURL     string
	HTTPClient  *http.Client
	bearerToken string
	userAgent   string
}

var _ GraphClient = (*HTTPGraphClient)(nil)

func NewHTTPGraphClient(bearerToken, userAgent string, httpClient *http.Client) *HTTPGraphClient {
	return &HTTPGraphClient{
		BaseURL:     publish.DefaultBaseURL,
		HTTPClient:  httpClient,
		bearerToken: bearerToken,
		userAgent:   userAgent,
	}
}

type userResponse struct {
	Data userData `json:"data"`
}

type userData struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	PublicMetrics struct {
		FollowersCount int64 `json:"followers_count"`
	} `json:"public_metrics"`
}

type followingResponse struct {
	Data []userData `json:"data"`
	Meta struct {
		NextToken string `json:"next_token"`
	} `json:"meta"`
}

func (c *HTTPGraphClient) ResolveUser(ctx context.Context, handle string) (*UserInfo, error) {
	username := strings.TrimPrefix(handle, "@")
	var parsed userResponse
	err := c.get(ctx, fmt.Sprintf("/users/by/username/%s?user.fields=public_metrics", username), &parsed)
	if err != nil {
		return nil, err
	}
	if parsed.Data.ID == "" {
		return nil, fmt.Errorf("user not found: %s", handle)
	}
	return toUserInfo(parsed.Data), nil
}

// Following returns the account IDs the user follows, first page only.
// A thousand accounts covers every tracked athlete and keeps the rate
// limit budget predictable.
func (c *HTTPGraphClient) Following(ctx context.Context, userID string) ([]string, error) {
	var parsed followingResponse
	err := c.get(ctx, fmt.Sprintf("/users/%s/following?max_results=1000", userID), &parsed)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parsed.Data))
	for _, user := range parsed.Data {
		ids = append(ids, user.ID)
	}
	return ids, nil
}

func (c *HTTPGraphClient) UserInfo(ctx context.Context, userID string) (*UserInfo, error) {
	var parsed userResponse
	err := c.get(ctx, fmt.Sprintf("/users/%s?user.fields=public_metrics", userID), &parsed)
	if err != nil {
		return nil, err
	}
	if parsed.Data.ID == "" {
		return nil, fmt.Errorf("user not found: %s", userID)
	}
	return toUserInfo(parsed.Data), nil
}

func (c *HTTPGraphClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return publish.ErrRateLimited
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", publish.ErrForbidden, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func toUserInfo(d userData) *UserInfo {
	return &UserInfo{
		ID:        d.ID,
		Name:      d.Name,
		Handle:    "@" + d.Username,
		Followers: d.PublicMetrics.FollowersCount,
	}
}
