package publish

import (
	"context"
	"errors"
	"log/slog"
)

// Distinguishable publish failures. Rate limits are transient and call
// for backoff; forbidden means credentials or permissions are wrong and
// retrying is pointless.
var (
	ErrRateLimited = errors.New("publish rate limited")
	ErrForbidden   = errors.New("publish forbidden")
)

// Publisher posts rendered text to the platform.
type Publisher interface {
	Post(ctx context.Context, text string) (postID string, err error)
}

// DryRunPublisher logs instead of posting. Used when auto-publish is
// disabled or no credentials are configured.
type DryRunPublisher struct{}

func NewDryRunPublisher() *DryRunPublisher {
	return &DryRunPublisher{}
}

func (p *DryRunPublisher) Post(ctx context.Context, text string) (string, error) {
	slog.Info("Dry run, would post", "length", len(text), "text", text)
	return "", nil
}
