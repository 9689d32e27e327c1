package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/database"
	"github.com/erdmkk/football-gossip-bot/app/publish"
	"github.com/erdmkk/football-gossip-bot/app/score"
)

// EventSource is the "on this day" capability the history variant needs.
type EventSource interface {
	Fetch(ctx context.Context) ([]content.Candidate, error)
}

// HistoryOptions tunes the history variant.
type HistoryOptions struct {
	MinScore    int
	TopK        int
	DedupWindow time.Duration
	Backoff     time.Duration
}

// HistoryPipeline runs one history tick: fetch today's events, drop
// already-published ones, score the rest and publish at most one.
type HistoryPipeline struct {
	deps   Deps
	source EventSource
	scorer *score.HistoryScorer
	rng    *rand.Rand
	opts   HistoryOptions

	now   func() time.Time
	sleep func(context.Context, time.Duration)
}

func NewHistoryPipeline(deps Deps, source EventSource, scorer *score.HistoryScorer, rng *rand.Rand, opts HistoryOptions) *HistoryPipeline {
	return &HistoryPipeline{
		deps:   deps,
		source: source,
		scorer: scorer,
		rng:    rng,
		opts:   opts,
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

func (p *HistoryPipeline) Run(ctx context.Context) error {
	now := p.now()
	if !p.deps.Gate.InWindow(now) {
		slog.Debug("Outside active hours, skipping tick")
		return nil
	}

	candidates, err := p.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	if len(candidates) == 0 {
		return nil
	}

	scored := make([]content.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		dup, err := p.deps.Memory.IsDuplicate(c.Identity, p.opts.DedupWindow)
		if err != nil {
			slog.Error("Dedup check failed, skipping event", "identity", c.Identity, "error", err)
			continue
		}
		if dup {
			continue
		}
		scored = append(scored, p.scorer.Score(c))
	}

	pick := Select(scored, p.opts.MinScore, p.deps.Gate.Remaining(now), p.opts.TopK, p.rng)
	if pick == nil {
		slog.Info("Nothing to publish", "fetched", len(candidates), "fresh", len(scored))
		return nil
	}

	if !p.deps.Gate.Allow(now) {
		return nil
	}

	text := p.deps.Renderer.Render(*pick)
	postID, err := p.deps.Publisher.Post(ctx, text)
	if err != nil {
		if errors.Is(err, publish.ErrRateLimited) {
			slog.Warn("Rate limited, ending tick early", "backoff", p.opts.Backoff)
			p.sleep(ctx, p.opts.Backoff)
			return nil
		}
		slog.Error("Publish failed", "error", err)
		return nil
	}

	if err := p.deps.Posts.SavePost(database.Post{
		Identity:       pick.Candidate.Identity,
		Text:           text,
		PlatformPostID: postID,
		PostedAt:       now,
	}); err != nil {
		slog.Error("Failed to save post", "error", err)
	}
	p.deps.Memory.Record(pick.Candidate.Identity, now)
	p.deps.Gate.RecordPost(now)

	slog.Info("Event published", "year", pick.Candidate.Context.Year, "score", pick.Score, "post_id", postID)
	return nil
}
