package score

import (
	"time"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/tables"
)

// NewsScorer rates fetched articles so the selector has comparable
// scores across feeds: drama and transfer keyword hits, the source's
// configured weight and how fresh the article is.
type NewsScorer struct {
	tables *tables.Scoring
	now    func() time.Time
}

func NewNewsScorer(t *tables.Scoring) *NewsScorer {
	return &NewsScorer{tables: t, now: time.Now}
}

func (s *NewsScorer) Score(c content.Candidate) content.ScoredCandidate {
	score := 0

	text := c.Text + " " + c.Context.Summary

	for _, kw := range s.tables.DramaKeywords {
		if containsFold(text, kw) {
			score += 10
		}
	}
	for _, kw := range s.tables.TransferKeywords {
		if containsFold(text, kw) {
			score += 8
		}
	}

	switch {
	case c.Context.SourceWeight >= 1.0:
		score += 10
	case c.Context.SourceWeight >= 0.9:
		score += 8
	default:
		score += 5
	}

	if !c.Context.PublishedAt.IsZero() {
		age := s.now().Sub(c.Context.PublishedAt)
		switch {
		case age <= 2*time.Hour:
			score += 15
		case age <= 6*time.Hour:
			score += 8
		}
	}

	score = clamp(score)

	return content.ScoredCandidate{Candidate: c, Score: score, Tier: content.TierFor(score)}
}
