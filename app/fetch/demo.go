package fetch

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// DemoGraphClient simulates the social graph for runs without platform
// credentials. Each tracked account gets a stable synthetic following
// list; on every read there is a small chance one entry flips, so the
// whole pipeline sees occasional follow and unfollow events.
type DemoGraphClient struct {
	mu        sync.Mutex
	rng       *rand.Rand
	following map[string][]string
}

var _ GraphClient = (*DemoGraphClient)(nil)

func NewDemoGraphClient(seed int64) *DemoGraphClient {
	return &DemoGraphClient{
		rng:       rand.New(rand.NewSource(seed)),
		following: make(map[string][]string),
	}
}

func (c *DemoGraphClient) ResolveUser(ctx context.Context, handle string) (*UserInfo, error) {
	username := strings.TrimPrefix(handle, "@")
	return &UserInfo{
		ID:        "demo-" + username,
		Name:      username,
		Handle:    "@" + username,
		Followers: 1_000_000,
	}, nil
}

func (c *DemoGraphClient) Following(ctx context.Context, userID string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, ok := c.following[userID]
	if !ok {
		list = make([]string, 0, 20)
		for i := 0; i < 20; i++ {
			list = append(list, fmt.Sprintf("%s-friend-%d", userID, i))
		}
		c.following[userID] = list
	}

	// Roughly one change every five reads.
	if c.rng.Intn(5) == 0 {
		if len(list) > 1 && c.rng.Intn(2) == 0 {
			idx := c.rng.Intn(len(list))
			list = append(list[:idx], list[idx+1:]...)
		} else {
			list = append(list, fmt.Sprintf("%s-friend-%d", userID, c.rng.Intn(1_000_000)+100))
		}
		c.following[userID] = list
	}

	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

func (c *DemoGraphClient) UserInfo(ctx context.Context, userID string) (*UserInfo, error) {
	handle := "@" + userID
	return &UserInfo{
		ID:        userID,
		Name:      strings.ReplaceAll(userID, "-", " "),
		Handle:    handle,
		Followers: int64(c.hash(userID)%20_000_000 + 1_000),
	}, nil
}

// hash gives each synthetic account a stable follower count.
func (c *DemoGraphClient) hash(s string) int {
	h := 0
	for _, r := range s {
		h = h*31 + int(r)
	}
	if h < 0 {
		h = -h
	}
	return h
}
