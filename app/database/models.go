package database

import (
	"time"
)

// Change represents one observed follow/unfollow event.
type Change struct {
	ID              int64
	Kind            string
	Athlete         string
	AthleteHandle   string
	TargetName      string
	TargetHandle    string
	TargetFollowers int64
	DramaScore      int
	OccurredAt      time.Time
	Posted          bool
	CreatedAt       time.Time
}

// Post represents one published message. Identity is the dedup key;
// ChangeID links back to the triggering change for the social variant.
type Post struct {
	ID             int64
	Identity       string
	ChangeID       *int64
	Text           string
	PlatformPostID string
	PostedAt       time.Time
	CreatedAt      time.Time
}

// IdentityRecord pairs a dedup identity with its publish time.
type IdentityRecord struct {
	Identity string
	PostedAt time.Time
}

// Snapshot records the size of a subject's following list at check time.
type Snapshot struct {
	ID             int64
	AthleteHandle  string
	FollowingCount int
	TakenAt        time.Time
}

// Stats aggregates the totals exposed on the status API.
type Stats struct {
	TotalChanges int
	Follows      int
	Unfollows    int
	TotalPosts   int
	TopAthletes  []AthleteActivity
}

type AthleteActivity struct {
	Athlete string
	Changes int
}
