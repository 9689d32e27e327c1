package score

import (
	"log/slog"
	"strings"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/tables"
)

// SocialScorer rates follow/unfollow changes for viral potential.
// Deterministic given the candidate and the configured tables; unknown
// or missing fields contribute zero rather than failing.
type SocialScorer struct {
	tables *tables.Scoring
}

func NewSocialScorer(t *tables.Scoring) *SocialScorer {
	return &SocialScorer{tables: t}
}

func (s *SocialScorer) Score(c content.Candidate) content.ScoredCandidate {
	score := 0

	// Unfollows signal intentional rupture, a stronger signal than
	// a new follow.
	if c.Kind == content.KindUnfollow {
		score += 40
	} else {
		score += 20
	}

	score += popularityBonus(c.Popularity)

	if matchesAny(c.Subject.Name, s.tables.Superstars) {
		score += 15
	}
	if matchesAny(c.Object.Name, s.tables.Superstars) {
		score += 15
	}

	rivalry := s.isRivalry(c.Context.Affiliation, c.Object.Name)
	if rivalry {
		score += 40
		slog.Info("Rivalry detected", "subject", c.Subject.Name, "object", c.Object.Name)
	}

	if matchesAny(c.Object.Name, s.tables.Controversial) {
		score += 30
		slog.Info("Controversial figure involved", "object", c.Object.Name)
	}

	// Unfollowing a rival compounds both signals.
	if c.Kind == content.KindUnfollow && rivalry {
		score += 20
	}

	score = clamp(score)

	slog.Debug("Drama score calculated",
		"score", score,
		"subject", c.Subject.Name,
		"kind", c.Kind,
		"object", c.Object.Name)

	return content.ScoredCandidate{Candidate: c, Score: score, Tier: content.TierFor(score)}
}

// popularityBonus is a step function of the object's follower count.
// Boundary values belong to the lower tier: the comparison is strict.
func popularityBonus(followers int64) int {
	switch {
	case followers > 10_000_000:
		return 25
	case followers > 1_000_000:
		return 15
	case followers > 100_000:
		return 10
	default:
		return 5
	}
}

func (s *SocialScorer) isRivalry(affiliation, objectName string) bool {
	rivals, ok := s.tables.Rivalries[affiliation]
	if !ok {
		return false
	}
	for _, rival := range rivals {
		if containsFold(objectName, rival) {
			return true
		}
	}
	return false
}

func matchesAny(value string, keywords []string) bool {
	for _, kw := range keywords {
		if containsFold(value, kw) {
			return true
		}
	}
	return false
}

func containsFold(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func clamp(score int) int {
	if score > 100 {
		return 100
	}
	return score
}
