package score

import (
	"testing"

	"github.com/erdmkk/football-gossip-bot/app/content"
)

func TestHistoryScorer_WarDeathScenario(t *testing.T) {
	scorer := NewHistoryScorer(testTables(t))

	// Era 1944 -> 20, "savaş" and "öldü" keyword hits -> 20, death -> 15.
	scored := scorer.Score(content.Candidate{
		Kind: content.KindHistoricalEvent,
		Text: "Büyük savaş sırasında komutan öldü",
		Context: content.Context{
			Year:      1944,
			EventType: "death",
		},
	})

	if scored.Score < 40 {
		t.Errorf("Expected at least 40 before kind bonus, got %d", scored.Score)
	}
	if scored.Score != 55 {
		t.Errorf("Expected score 55 (20 era + 20 keywords + 15 death), got %d", scored.Score)
	}
}

func TestHistoryScorer_EraFirstMatchWins(t *testing.T) {
	scorer := NewHistoryScorer(testTables(t))

	// 1944 matches both the 1914-1945 and 1900-2000 rows; the first
	// listed row must win.
	if got := scorer.eraBonus(1944); got != 20 {
		t.Errorf("Expected era bonus 20 for 1944, got %d", got)
	}
	if got := scorer.eraBonus(1960); got != 8 {
		t.Errorf("Expected era bonus 8 for 1960, got %d", got)
	}
	if got := scorer.eraBonus(300); got != 15 {
		t.Errorf("Expected era bonus 15 for 300, got %d", got)
	}
	if got := scorer.eraBonus(1200); got != 10 {
		t.Errorf("Expected era bonus 10 for 1200, got %d", got)
	}
	if got := scorer.eraBonus(2024); got != 0 {
		t.Errorf("Expected no era bonus for 2024, got %d", got)
	}
}

func TestHistoryScorer_EventKindBonus(t *testing.T) {
	scorer := NewHistoryScorer(testTables(t))

	event := scorer.Score(content.Candidate{Text: "plain", Context: content.Context{EventType: "event"}})
	birth := scorer.Score(content.Candidate{Text: "plain", Context: content.Context{EventType: "birth"}})
	death := scorer.Score(content.Candidate{Text: "plain", Context: content.Context{EventType: "death"}})

	if event.Score != 5 {
		t.Errorf("Expected generic event bonus 5, got %d", event.Score)
	}
	if birth.Score != 0 {
		t.Errorf("Expected no bonus for births, got %d", birth.Score)
	}
	if death.Score != 15 {
		t.Errorf("Expected death bonus 15, got %d", death.Score)
	}
}

func TestHistoryScorer_KeywordAccumulationClamped(t *testing.T) {
	scorer := NewHistoryScorer(testTables(t))

	scored := scorer.Score(content.Candidate{
		Text: "savaş katliam devrim suikast felaket deprem yangın patlama isyan darbe istila kuşatma",
		Context: content.Context{
			Year:      1917,
			EventType: "death",
		},
	})

	if scored.Score != 100 {
		t.Errorf("Expected unbounded accumulation to clamp at 100, got %d", scored.Score)
	}
}

func TestHistoryScorer_EmptyCandidate(t *testing.T) {
	scorer := NewHistoryScorer(testTables(t))

	scored := scorer.Score(content.Candidate{})
	if scored.Score != 0 {
		t.Errorf("Expected empty candidate to score 0, got %d", scored.Score)
	}
	if scored.Tier != content.TierNone {
		t.Errorf("Expected none tier, got %s", scored.Tier)
	}
}
