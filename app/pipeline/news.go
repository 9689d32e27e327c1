package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/database"
	"github.com/erdmkk/football-gossip-bot/app/fetch"
	"github.com/erdmkk/football-gossip-bot/app/publish"
	"github.com/erdmkk/football-gossip-bot/app/score"
)

// ArticleSource is the feed-reading capability the news variant needs.
type ArticleSource interface {
	Fetch(ctx context.Context, maxArticles int) []content.Candidate
	FetchDetail(ctx context.Context, link string, extractor *fetch.ContentExtractor) (string, error)
}

// NewsOptions tunes the news variant.
type NewsOptions struct {
	MinScore    int
	TopK        int
	MaxArticles int
	DedupWindow time.Duration
	Backoff     time.Duration
	// ExtractDetail pulls the article body before rendering so the
	// category keywords see more than the headline.
	ExtractDetail bool
}

// NewsPipeline runs one news tick: fetch the configured feeds, drop
// already-published articles, score the rest and publish at most one.
type NewsPipeline struct {
	deps      Deps
	source    ArticleSource
	scorer    *score.NewsScorer
	extractor *fetch.ContentExtractor
	rng       *rand.Rand
	opts      NewsOptions

	now   func() time.Time
	sleep func(context.Context, time.Duration)
}

func NewNewsPipeline(deps Deps, source ArticleSource, scorer *score.NewsScorer, rng *rand.Rand, opts NewsOptions) *NewsPipeline {
	return &NewsPipeline{
		deps:      deps,
		source:    source,
		scorer:    scorer,
		extractor: fetch.NewContentExtractor(),
		rng:       rng,
		opts:      opts,
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

func (p *NewsPipeline) Run(ctx context.Context) error {
	now := p.now()
	if !p.deps.Gate.InWindow(now) {
		slog.Debug("Outside active hours, skipping tick")
		return nil
	}

	candidates := p.source.Fetch(ctx, p.opts.MaxArticles)
	if len(candidates) == 0 {
		return nil
	}

	scored := make([]content.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		dup, err := p.deps.Memory.IsDuplicate(c.Identity, p.opts.DedupWindow)
		if err != nil {
			slog.Error("Dedup check failed, skipping article", "identity", c.Identity, "error", err)
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

	if p.opts.ExtractDetail && pick.Candidate.Context.Link != "" {
		body, err := p.source.FetchDetail(ctx, pick.Candidate.Context.Link, p.extractor)
		if err != nil {
			slog.Warn("Article extraction failed", "link", pick.Candidate.Context.Link, "error", err)
		} else if body != "" {
			pick.Candidate.Context.Summary = body
		}
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

	slog.Info("Article published", "title", pick.Candidate.Text, "score", pick.Score, "post_id", postID)
	return nil
}
