package content

import (
	"time"
)

type Kind string

const (
	KindFollow          Kind = "follow"
	KindUnfollow        Kind = "unfollow"
	KindNewsArticle     Kind = "news_article"
	KindHistoricalEvent Kind = "historical_event"
)

// Entity is a named party involved in a candidate: the tracked athlete,
// the account being followed or unfollowed, and so on.
type Entity struct {
	Name   string
	Handle string
}

// Candidate is one unit of potential publishable content, normalized
// across all sources. Identity must be stable for the same logical event
// and unique across unrelated events; everything else is advisory.
type Candidate struct {
	Kind       Kind
	Identity   string
	Subject    Entity
	Object     Entity
	Popularity int64
	Text       string
	Timestamp  time.Time
	Context    Context
}

// Context carries variant-specific attributes consumed only by the
// scorer and renderer. Never mutated after creation.
type Context struct {
	Affiliation  string  // subject's team, for rivalry checks
	Source       string  // feed name for news articles
	SourceWeight float64 // feed weight for news articles
	Link         string  // article/event page URL
	Summary      string  // article summary or extracted detail text
	Year         int     // publication/event year for historical events
	EventType    string  // "event", "birth" or "death" for history
	PublishedAt  time.Time
}

// Tier is the human-readable bucket a score falls into. Used for
// logging and diagnostics only, never for gating.
type Tier string

const (
	TierNone   Tier = "none"
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
	TierMega   Tier = "mega"
)

// TierFor maps a final score to its explanation tier.
func TierFor(score int) Tier {
	switch {
	case score >= 80:
		return TierMega
	case score >= 60:
		return TierHigh
	case score >= 40:
		return TierMedium
	case score >= 20:
		return TierLow
	default:
		return TierNone
	}
}

// ScoredCandidate pairs a candidate with its importance score.
// Produced once by a scorer, never mutated afterwards.
type ScoredCandidate struct {
	Candidate Candidate
	Score     int
	Tier      Tier
}
