package database

import (
	"time"
)

type ChangeRepository interface {
	SaveChange(change Change) (int64, error)
	MarkPosted(changeID int64) error
	RecentChanges(limit int) ([]Change, error)
	// HasRecentChange answers the structural dedup query: has an event
	// with this (kind, subject, object) triple been recorded within
	// the window.
	HasRecentChange(kind, athleteHandle, targetHandle string, window time.Duration) (bool, error)
	SaveSnapshot(athleteHandle string, followingCount int, takenAt time.Time) error
	Stats() (*Stats, error)
}

type PostRepository interface {
	// SavePost inserts a publish record; inserting the same identity
	// twice is a no-op.
	SavePost(post Post) error
	HasIdentity(identity string, window time.Duration) (bool, error)
	// LoadIdentities returns all identities posted since the cutoff,
	// used to warm the in-process dedup mirror at startup.
	LoadIdentities(since time.Time) ([]IdentityRecord, error)
	PostCount() (int, error)
}
