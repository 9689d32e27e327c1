package score

import (
	"log/slog"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/tables"
)

// HistoryScorer rates "on this day" events. Keyword hits accumulate
// without a per-term cap; the final clamp is the only bound.
type HistoryScorer struct {
	tables *tables.Scoring
}

func NewHistoryScorer(t *tables.Scoring) *HistoryScorer {
	return &HistoryScorer{tables: t}
}

func (s *HistoryScorer) Score(c content.Candidate) content.ScoredCandidate {
	score := 0

	for _, kw := range s.tables.HistoryKeywords {
		if containsFold(c.Text, kw) {
			score += 10
		}
	}

	switch c.Context.EventType {
	case "death":
		score += 15
	case "event":
		score += 5
	}

	score += s.eraBonus(c.Context.Year)
	score = clamp(score)

	slog.Debug("Event score calculated", "score", score, "year", c.Context.Year, "type", c.Context.EventType)

	return content.ScoredCandidate{Candidate: c, Score: score, Tier: content.TierFor(score)}
}

// eraBonus walks the configured era table in order; the first matching
// range wins. Table order is part of the contract since ranges overlap.
func (s *HistoryScorer) eraBonus(year int) int {
	if year == 0 {
		return 0
	}
	for _, era := range s.tables.Eras {
		if era.Contains(year) {
			return era.Bonus
		}
	}
	return 0
}
