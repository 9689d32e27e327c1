package tables

// Scoring holds the static keyword and weight tables consumed by the
// scorers. Loaded once at startup, immutable afterwards.
type Scoring struct {
	// Rivalries maps a team to its configured rival teams.
	Rivalries map[string][]string `yaml:"rivalries"`

	// Superstars are high-profile names worth a bonus on either side
	// of a change. Case-insensitive substring match.
	Superstars []string `yaml:"superstars"`

	// Controversial are figures whose involvement alone is a story.
	Controversial []string `yaml:"controversial"`

	// HistoryKeywords mark dramatic historical events; each hit adds
	// to the score before the final clamp.
	HistoryKeywords []string `yaml:"history_keywords"`

	// Eras is evaluated in order; the first matching range wins.
	Eras []EraRange `yaml:"eras"`

	// News category keyword lists.
	TransferKeywords []string `yaml:"transfer_keywords"`
	MatchKeywords    []string `yaml:"match_keywords"`
	DramaKeywords    []string `yaml:"drama_keywords"`
}

// EraRange is one row of the era bonus table. Min and Max are
// inclusive; a nil bound is open.
type EraRange struct {
	Min   *int `yaml:"min"`
	Max   *int `yaml:"max"`
	Bonus int  `yaml:"bonus"`
}

// Contains reports whether a year falls inside the range.
func (e EraRange) Contains(year int) bool {
	if e.Min != nil && year < *e.Min {
		return false
	}
	if e.Max != nil && year > *e.Max {
		return false
	}
	return true
}

// Athlete is one tracked subject of the follow-change variant.
type Athlete struct {
	Name   string `yaml:"name"`
	Handle string `yaml:"handle"`
	Team   string `yaml:"team"`
}

type Athletes struct {
	Athletes []Athlete `yaml:"athletes"`
}

// Feed is one syndication source for the news variant.
type Feed struct {
	Name   string  `yaml:"name"`
	URL    string  `yaml:"url"`
	Weight float64 `yaml:"weight"`
}

type Feeds struct {
	Feeds []Feed `yaml:"feeds"`
}
