package pipeline

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/fetch"
	"github.com/erdmkk/football-gossip-bot/app/publish"
	"github.com/erdmkk/football-gossip-bot/app/render"
	"github.com/erdmkk/football-gossip-bot/app/score"
	"github.com/erdmkk/football-gossip-bot/app/tables"
)

func testAthlete() tables.Athlete {
	return tables.Athlete{Name: "Cristiano Ronaldo", Handle: "@cristiano", Team: "Al Nassr"}
}

func newGossipEnv(t *testing.T, graph *fakeGraph, opts GossipOptions) (*testEnv, *GossipPipeline) {
	t.Helper()
	env := newTestEnv(t)
	p := NewGossipPipeline(env.deps, graph, env.changes, []tables.Athlete{testAthlete()}, score.NewSocialScorer(env.scoring), opts)
	p.sleep = env.recordSleeps()
	return env, p
}

func TestGossipPipeline_FirstObservationIsQuiet(t *testing.T) {
	graph := &fakeGraph{
		followingSeq: [][]string{{"t1", "t2"}},
		users: map[string]*fetch.UserInfo{
			"t1": {ID: "t1", Name: "Target One", Handle: "@one", Followers: 500},
			"t2": {ID: "t2", Name: "Target Two", Handle: "@two", Followers: 500},
		},
	}
	env, p := newGossipEnv(t, graph, GossipOptions{MinScore: 40, AutoPublish: true, DedupWindow: 24 * time.Hour})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(env.changes.changes) != 0 {
		t.Errorf("Expected no changes on first observation, got %d", len(env.changes.changes))
	}
	if len(env.publisher.texts) != 0 {
		t.Errorf("Expected no publishes on first observation, got %d", len(env.publisher.texts))
	}
	if env.changes.snapshots != 1 {
		t.Errorf("Expected a snapshot to be saved, got %d", env.changes.snapshots)
	}
}

func TestGossipPipeline_PublishesUnfollow(t *testing.T) {
	graph := &fakeGraph{
		followingSeq: [][]string{{"t1", "t2"}, {"t1"}},
		users: map[string]*fetch.UserInfo{
			"t2": {ID: "t2", Name: "Piers Morgan", Handle: "@piersmorgan", Followers: 15_000_000},
		},
	}
	env, p := newGossipEnv(t, graph, GossipOptions{MinScore: 40, AutoPublish: true, DedupWindow: 24 * time.Hour})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(env.changes.changes) != 1 {
		t.Fatalf("Expected 1 change recorded, got %d", len(env.changes.changes))
	}
	change := env.changes.changes[0]
	if change.Kind != string(content.KindUnfollow) {
		t.Errorf("Expected unfollow change, got %s", change.Kind)
	}
	if change.TargetHandle != "@piersmorgan" {
		t.Errorf("Expected target handle recorded, got %s", change.TargetHandle)
	}
	if change.DramaScore < 40 {
		t.Errorf("Expected drama score at least 40, got %d", change.DramaScore)
	}

	if len(env.publisher.texts) != 1 {
		t.Fatalf("Expected 1 publish, got %d", len(env.publisher.texts))
	}
	if utf8.RuneCountInString(env.publisher.texts[0]) > render.MaxLength {
		t.Errorf("Published text over length budget: %d runes", utf8.RuneCountInString(env.publisher.texts[0]))
	}

	if !env.changes.posted[change.ID] {
		t.Errorf("Expected change marked as posted")
	}
	if len(env.posts.posts) != 1 {
		t.Fatalf("Expected 1 post saved, got %d", len(env.posts.posts))
	}
	post := env.posts.posts[0]
	if post.ChangeID == nil || *post.ChangeID != change.ID {
		t.Errorf("Expected post linked to change %d", change.ID)
	}
	if post.PlatformPostID == "" {
		t.Errorf("Expected platform post ID recorded")
	}
	if env.gate.Remaining(time.Now()) != 9 {
		t.Errorf("Expected budget consumed, remaining %d", env.gate.Remaining(time.Now()))
	}
}

func TestGossipPipeline_StructuralDedup(t *testing.T) {
	// Unfollow, re-follow, unfollow again. The second unfollow of the
	// same target within the window must not produce a second post.
	graph := &fakeGraph{
		followingSeq: [][]string{{"t1", "t2"}, {"t1"}, {"t1", "t2"}, {"t1"}},
		users: map[string]*fetch.UserInfo{
			"t2": {ID: "t2", Name: "Piers Morgan", Handle: "@piersmorgan", Followers: 15_000_000},
		},
	}
	env, p := newGossipEnv(t, graph, GossipOptions{MinScore: 40, AutoPublish: true, DedupWindow: 24 * time.Hour})

	for i := 0; i < 4; i++ {
		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
	}

	unfollows := 0
	for _, c := range env.changes.changes {
		if c.Kind == string(content.KindUnfollow) {
			unfollows++
		}
	}
	if unfollows != 1 {
		t.Errorf("Expected repeated unfollow to be suppressed, got %d unfollow changes", unfollows)
	}
}

func TestGossipPipeline_RateLimitEndsTickEarly(t *testing.T) {
	graph := &fakeGraph{
		followingSeq: [][]string{{"t1", "t2"}, {"t1"}},
		userInfoErr:  publish.ErrRateLimited,
	}
	backoff := 15 * time.Minute
	env, p := newGossipEnv(t, graph, GossipOptions{MinScore: 40, AutoPublish: true, DedupWindow: 24 * time.Hour, Backoff: backoff})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Rate limited run should not return an error, got %v", err)
	}

	if len(env.publisher.texts) != 0 {
		t.Errorf("Expected no publishes under rate limiting")
	}
	found := false
	for _, d := range env.sleeps {
		if d == backoff {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected backoff sleep of %v, got %v", backoff, env.sleeps)
	}
}

func TestGossipPipeline_RecordWithoutPublish(t *testing.T) {
	graph := &fakeGraph{
		followingSeq: [][]string{{"t1", "t2"}, {"t1"}},
		users: map[string]*fetch.UserInfo{
			"t2": {ID: "t2", Name: "Piers Morgan", Handle: "@piersmorgan", Followers: 15_000_000},
		},
	}
	env, p := newGossipEnv(t, graph, GossipOptions{MinScore: 40, AutoPublish: false, DedupWindow: 24 * time.Hour})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(env.changes.changes) != 1 {
		t.Errorf("Expected change recorded, got %d", len(env.changes.changes))
	}
	if len(env.publisher.texts) != 0 {
		t.Errorf("Expected no publish with auto publish disabled")
	}
	if len(env.posts.posts) != 0 {
		t.Errorf("Expected no post saved with auto publish disabled")
	}
}

func TestGossipPipeline_TargetLookupFailureSkipsChange(t *testing.T) {
	// t2 resolves, t3 does not. The t3 change is dropped but the t2
	// change still goes through.
	graph := &fakeGraph{
		followingSeq: [][]string{{"t1", "t2", "t3"}, {"t1"}},
		users: map[string]*fetch.UserInfo{
			"t2": {ID: "t2", Name: "Piers Morgan", Handle: "@piersmorgan", Followers: 15_000_000},
		},
	}
	env, p := newGossipEnv(t, graph, GossipOptions{MinScore: 40, AutoPublish: true, DedupWindow: 24 * time.Hour})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(env.changes.changes) != 1 {
		t.Errorf("Expected only the resolvable target to be recorded, got %d changes", len(env.changes.changes))
	}
}
