package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/database"
	"github.com/erdmkk/football-gossip-bot/app/detect"
	"github.com/erdmkk/football-gossip-bot/app/fetch"
	"github.com/erdmkk/football-gossip-bot/app/publish"
	"github.com/erdmkk/football-gossip-bot/app/score"
	"github.com/erdmkk/football-gossip-bot/app/tables"
)

// GossipOptions tunes the follow tracker variant.
type GossipOptions struct {
	MinScore    int
	AutoPublish bool
	DedupWindow time.Duration
	// Pause separates consecutive athlete checks within one tick so the
	// graph API sees a steady request rate instead of a burst.
	Pause time.Duration
	// Backoff is how long a tick sleeps after the graph or publish API
	// rate-limits us before giving up on the tick.
	Backoff time.Duration
}

// GossipPipeline runs one follow tracker tick: read each athlete's
// following list, diff it against the baseline, and publish the
// interesting changes.
type GossipPipeline struct {
	deps      Deps
	graph     fetch.GraphClient
	changes   database.ChangeRepository
	athletes  []tables.Athlete
	scorer    *score.SocialScorer
	baselines *detect.Baselines
	opts      GossipOptions

	// handle -> resolved platform user ID, filled lazily.
	userIDs map[string]string

	now   func() time.Time
	sleep func(context.Context, time.Duration)
}

func NewGossipPipeline(deps Deps, graph fetch.GraphClient, changes database.ChangeRepository, athletes []tables.Athlete, scorer *score.SocialScorer, opts GossipOptions) *GossipPipeline {
	return &GossipPipeline{
		deps:      deps,
		graph:     graph,
		changes:   changes,
		athletes:  athletes,
		scorer:    scorer,
		baselines: detect.NewBaselines(),
		opts:      opts,
		userIDs:   make(map[string]string),
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// Run executes one tick. A failure for one athlete never aborts the
// others; a rate limit response ends the tick early after a long pause
// because every further request would hit the same wall.
func (p *GossipPipeline) Run(ctx context.Context) error {
	for i, athlete := range p.athletes {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i > 0 {
			p.sleep(ctx, p.opts.Pause)
		}

		if err := p.checkAthlete(ctx, athlete); err != nil {
			if errors.Is(err, publish.ErrRateLimited) {
				slog.Warn("Rate limited, ending tick early", "athlete", athlete.Name, "backoff", p.opts.Backoff)
				p.sleep(ctx, p.opts.Backoff)
				return nil
			}
			slog.Error("Athlete check failed", "athlete", athlete.Name, "error", err)
		}
	}
	return nil
}

func (p *GossipPipeline) checkAthlete(ctx context.Context, athlete tables.Athlete) error {
	userID, err := p.resolveID(ctx, athlete.Handle)
	if err != nil {
		return err
	}

	ids, err := p.graph.Following(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to read following list: %w", err)
	}

	current := detect.NewSnapshot(ids)
	followed, unfollowed := detect.Detect(p.baselines.Get(athlete.Handle), current)
	p.baselines.Replace(athlete.Handle, current)

	if err := p.changes.SaveSnapshot(athlete.Handle, len(ids), p.now()); err != nil {
		slog.Error("Failed to save snapshot", "athlete", athlete.Name, "error", err)
	}

	if len(followed) == 0 && len(unfollowed) == 0 {
		slog.Debug("No changes detected", "athlete", athlete.Name, "following", len(ids))
		return nil
	}
	slog.Info("Changes detected", "athlete", athlete.Name, "followed", len(followed), "unfollowed", len(unfollowed))

	for _, id := range followed {
		if err := p.handleChange(ctx, content.KindFollow, athlete, id); err != nil {
			return err
		}
	}
	for _, id := range unfollowed {
		if err := p.handleChange(ctx, content.KindUnfollow, athlete, id); err != nil {
			return err
		}
	}
	return nil
}

// handleChange processes one follow or unfollow event. Only a rate
// limit error propagates; anything else is logged and the event is
// skipped so its siblings still get a chance.
func (p *GossipPipeline) handleChange(ctx context.Context, kind content.Kind, athlete tables.Athlete, targetID string) error {
	info, err := p.graph.UserInfo(ctx, targetID)
	if err != nil {
		if errors.Is(err, publish.ErrRateLimited) {
			return err
		}
		slog.Warn("Target lookup failed, skipping change", "target_id", targetID, "error", err)
		return nil
	}

	dup, err := p.deps.Memory.IsDuplicateChange(kind, athlete.Handle, info.Handle, p.opts.DedupWindow)
	if err != nil {
		slog.Error("Dedup check failed, skipping change", "error", err)
		return nil
	}
	if dup {
		slog.Debug("Duplicate change skipped", "kind", kind, "athlete", athlete.Handle, "target", info.Handle)
		return nil
	}

	now := p.now()
	candidate := content.Candidate{
		Kind:       kind,
		Identity:   content.ChangeIdentity(kind, athlete.Handle, info.Handle),
		Subject:    content.Entity{Name: athlete.Name, Handle: athlete.Handle},
		Object:     content.Entity{Name: info.Name, Handle: info.Handle},
		Popularity: info.Followers,
		Timestamp:  now,
		Context:    content.Context{Affiliation: athlete.Team},
	}
	scored := p.scorer.Score(candidate)

	changeID, err := p.changes.SaveChange(database.Change{
		Kind:            string(kind),
		Athlete:         athlete.Name,
		AthleteHandle:   athlete.Handle,
		TargetName:      info.Name,
		TargetHandle:    info.Handle,
		TargetFollowers: info.Followers,
		DramaScore:      scored.Score,
		OccurredAt:      now,
	})
	if err != nil {
		slog.Error("Failed to save change", "error", err)
		return nil
	}
	p.deps.Memory.Record(candidate.Identity, now)

	if !p.opts.AutoPublish || scored.Score < p.opts.MinScore {
		slog.Info("Change recorded without publishing", "kind", kind, "athlete", athlete.Name, "target", info.Name, "score", scored.Score)
		return nil
	}
	if !p.deps.Gate.Allow(now) {
		return nil
	}

	text := p.deps.Renderer.Render(scored)
	postID, err := p.deps.Publisher.Post(ctx, text)
	if err != nil {
		if errors.Is(err, publish.ErrRateLimited) {
			return err
		}
		slog.Error("Publish failed", "error", err)
		return nil
	}

	if err := p.changes.MarkPosted(changeID); err != nil {
		slog.Error("Failed to mark change posted", "change_id", changeID, "error", err)
	}
	if err := p.deps.Posts.SavePost(database.Post{
		Identity:       candidate.Identity,
		ChangeID:       &changeID,
		Text:           text,
		PlatformPostID: postID,
		PostedAt:       now,
	}); err != nil {
		slog.Error("Failed to save post", "error", err)
	}
	p.deps.Gate.RecordPost(now)

	slog.Info("Change published", "kind", kind, "athlete", athlete.Name, "target", info.Name, "score", scored.Score, "post_id", postID)
	return nil
}

func (p *GossipPipeline) resolveID(ctx context.Context, handle string) (string, error) {
	if id, ok := p.userIDs[handle]; ok {
		return id, nil
	}
	info, err := p.graph.ResolveUser(ctx, handle)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", handle, err)
	}
	p.userIDs[handle] = info.ID
	return info.ID, nil
}
