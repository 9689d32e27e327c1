package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/database"
	"github.com/erdmkk/football-gossip-bot/app/dedup"
	"github.com/erdmkk/football-gossip-bot/app/fetch"
	"github.com/erdmkk/football-gossip-bot/app/publish"
	"github.com/erdmkk/football-gossip-bot/app/render"
	"github.com/erdmkk/football-gossip-bot/app/tables"
)

type fakePostRepo struct {
	posts []database.Post
}

func (f *fakePostRepo) SavePost(post database.Post) error {
	for _, p := range f.posts {
		if p.Identity == post.Identity {
			return nil
		}
	}
	f.posts = append(f.posts, post)
	return nil
}

func (f *fakePostRepo) HasIdentity(identity string, window time.Duration) (bool, error) {
	for _, p := range f.posts {
		if p.Identity == identity && time.Since(p.PostedAt) <= window {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostRepo) LoadIdentities(since time.Time) ([]database.IdentityRecord, error) {
	var out []database.IdentityRecord
	for _, p := range f.posts {
		if p.PostedAt.After(since) {
			out = append(out, database.IdentityRecord{Identity: p.Identity, PostedAt: p.PostedAt})
		}
	}
	return out, nil
}

func (f *fakePostRepo) PostCount() (int, error) {
	return len(f.posts), nil
}

type fakeChangeRepo struct {
	changes   []database.Change
	posted    map[int64]bool
	snapshots int
}

func newFakeChangeRepo() *fakeChangeRepo {
	return &fakeChangeRepo{posted: make(map[int64]bool)}
}

func (f *fakeChangeRepo) SaveChange(change database.Change) (int64, error) {
	change.ID = int64(len(f.changes) + 1)
	f.changes = append(f.changes, change)
	return change.ID, nil
}

func (f *fakeChangeRepo) MarkPosted(changeID int64) error {
	f.posted[changeID] = true
	return nil
}

func (f *fakeChangeRepo) RecentChanges(limit int) ([]database.Change, error) {
	return f.changes, nil
}

func (f *fakeChangeRepo) HasRecentChange(kind, athleteHandle, targetHandle string, window time.Duration) (bool, error) {
	for _, c := range f.changes {
		if c.Kind == kind && c.AthleteHandle == athleteHandle && c.TargetHandle == targetHandle &&
			time.Since(c.OccurredAt) <= window {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChangeRepo) SaveSnapshot(athleteHandle string, followingCount int, takenAt time.Time) error {
	f.snapshots++
	return nil
}

func (f *fakeChangeRepo) Stats() (*database.Stats, error) {
	return &database.Stats{}, nil
}

type fakePublisher struct {
	texts []string
	err   error
}

func (f *fakePublisher) Post(ctx context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.texts = append(f.texts, text)
	return fmt.Sprintf("post-%d", len(f.texts)), nil
}

type fakeGraph struct {
	followingSeq [][]string
	calls        int
	users        map[string]*fetch.UserInfo
	userInfoErr  error
}

func (g *fakeGraph) ResolveUser(ctx context.Context, handle string) (*fetch.UserInfo, error) {
	return &fetch.UserInfo{ID: "id-" + handle, Handle: handle}, nil
}

func (g *fakeGraph) Following(ctx context.Context, userID string) ([]string, error) {
	idx := g.calls
	if idx >= len(g.followingSeq) {
		idx = len(g.followingSeq) - 1
	}
	g.calls++
	return g.followingSeq[idx], nil
}

func (g *fakeGraph) UserInfo(ctx context.Context, userID string) (*fetch.UserInfo, error) {
	if g.userInfoErr != nil {
		return nil, g.userInfoErr
	}
	info, ok := g.users[userID]
	if !ok {
		return nil, fmt.Errorf("unknown user %s", userID)
	}
	return info, nil
}

type fakeArticleSource struct {
	candidates  []content.Candidate
	detail      string
	detailErr   error
	detailCalls int
}

func (f *fakeArticleSource) Fetch(ctx context.Context, maxArticles int) []content.Candidate {
	return f.candidates
}

func (f *fakeArticleSource) FetchDetail(ctx context.Context, link string, extractor *fetch.ContentExtractor) (string, error) {
	f.detailCalls++
	return f.detail, f.detailErr
}

type fakeEventSource struct {
	candidates []content.Candidate
	err        error
}

func (f *fakeEventSource) Fetch(ctx context.Context) ([]content.Candidate, error) {
	return f.candidates, f.err
}

type testEnv struct {
	posts     *fakePostRepo
	changes   *fakeChangeRepo
	publisher *fakePublisher
	gate      *publish.Gate
	scoring   *tables.Scoring
	deps      Deps
	sleeps    []time.Duration
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cache := tables.NewCache("")
	if err := cache.Run(); err != nil {
		t.Fatalf("Failed to load default tables: %v", err)
	}

	gate, err := publish.NewGate(10, "", "")
	if err != nil {
		t.Fatalf("Failed to build gate: %v", err)
	}

	env := &testEnv{
		posts:     &fakePostRepo{},
		changes:   newFakeChangeRepo(),
		publisher: &fakePublisher{},
		gate:      gate,
		scoring:   cache.Scoring(),
	}
	env.deps = Deps{
		Memory:    dedup.NewMemory(env.posts, env.changes),
		Renderer:  render.NewRenderer(env.scoring, rand.New(rand.NewSource(1))),
		Gate:      gate,
		Publisher: env.publisher,
		Posts:     env.posts,
	}
	return env
}

func (e *testEnv) recordSleeps() func(context.Context, time.Duration) {
	return func(ctx context.Context, d time.Duration) {
		e.sleeps = append(e.sleeps, d)
	}
}
