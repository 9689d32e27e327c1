package score

import (
	"testing"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/tables"
)

func testTables(t *testing.T) *tables.Scoring {
	t.Helper()
	cache := tables.NewCache("")
	if err := cache.Run(); err != nil {
		t.Fatalf("Failed to load default tables: %v", err)
	}
	return cache.Scoring()
}

func TestSocialScorer_UnfollowRivalryScenario(t *testing.T) {
	scorer := NewSocialScorer(testTables(t))

	// 40 (unfollow) + 25 (popularity) + 40 (rivalry) + 20 (unfollow
	// rivalry stack) = 125, clamped to 100.
	scored := scorer.Score(content.Candidate{
		Kind:       content.KindUnfollow,
		Subject:    content.Entity{Name: "Some Player", Handle: "@player"},
		Object:     content.Entity{Name: "Barcelona star", Handle: "@star"},
		Popularity: 15_000_000,
		Context:    content.Context{Affiliation: "Real Madrid"},
	})

	if scored.Score != 100 {
		t.Errorf("Expected score 100, got %d", scored.Score)
	}
	if scored.Tier != content.TierMega {
		t.Errorf("Expected mega tier, got %s", scored.Tier)
	}
}

func TestSocialScorer_FollowUnknownTarget(t *testing.T) {
	scorer := NewSocialScorer(testTables(t))

	scored := scorer.Score(content.Candidate{
		Kind:    content.KindFollow,
		Subject: content.Entity{Name: "Some Player"},
		Object:  content.Entity{Name: "Nobody"},
	})

	// 20 (follow) + 5 (lowest popularity tier).
	if scored.Score != 25 {
		t.Errorf("Expected score 25, got %d", scored.Score)
	}
	if scored.Tier != content.TierLow {
		t.Errorf("Expected low tier, got %s", scored.Tier)
	}
}

func TestSocialScorer_ControversialBonus(t *testing.T) {
	scorer := NewSocialScorer(testTables(t))

	scored := scorer.Score(content.Candidate{
		Kind:    content.KindFollow,
		Subject: content.Entity{Name: "Some Player"},
		Object:  content.Entity{Name: "Piers Morgan"},
	})

	// 20 (follow) + 5 (popularity) + 30 (controversial).
	if scored.Score != 55 {
		t.Errorf("Expected score 55, got %d", scored.Score)
	}
}

func TestSocialScorer_SuperstarBothSides(t *testing.T) {
	scorer := NewSocialScorer(testTables(t))

	scored := scorer.Score(content.Candidate{
		Kind:    content.KindFollow,
		Subject: content.Entity{Name: "Lionel Messi"},
		Object:  content.Entity{Name: "Erling Haaland"},
	})

	// 20 (follow) + 5 (popularity) + 15 + 15 (superstars on both sides).
	if scored.Score != 55 {
		t.Errorf("Expected score 55, got %d", scored.Score)
	}
}

func TestPopularityBonus_StrictBoundaries(t *testing.T) {
	cases := []struct {
		followers int64
		want      int
	}{
		{0, 5},
		{100_000, 5},
		{100_001, 10},
		{1_000_000, 10},
		{1_000_001, 15},
		{10_000_000, 15},
		{10_000_001, 25},
	}

	for _, c := range cases {
		if got := popularityBonus(c.followers); got != c.want {
			t.Errorf("popularityBonus(%d): expected %d, got %d", c.followers, c.want, got)
		}
	}
}

func TestPopularityBonus_NonDecreasing(t *testing.T) {
	prev := 0
	for _, f := range []int64{0, 50_000, 100_000, 500_000, 1_000_000, 5_000_000, 10_000_000, 50_000_000} {
		got := popularityBonus(f)
		if got < prev {
			t.Errorf("Expected non-decreasing bonus, got %d after %d at %d followers", got, prev, f)
		}
		prev = got
	}
}

func TestSocialScorer_ScoreAlwaysBounded(t *testing.T) {
	scorer := NewSocialScorer(testTables(t))

	candidates := []content.Candidate{
		{},
		{Kind: content.KindUnfollow},
		{
			Kind:       content.KindUnfollow,
			Subject:    content.Entity{Name: "Cristiano Ronaldo"},
			Object:     content.Entity{Name: "Messi Barcelona FIFA"},
			Popularity: 999_000_000,
			Timestamp:  time.Now(),
			Context:    content.Context{Affiliation: "Real Madrid"},
		},
	}

	for i, c := range candidates {
		scored := scorer.Score(c)
		if scored.Score < 0 || scored.Score > 100 {
			t.Errorf("Candidate %d: expected score in [0,100], got %d", i, scored.Score)
		}
	}
}
