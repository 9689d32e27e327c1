package dedup

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/database"
)

// Memory tracks previously published item identities. The store is the
// durable source of truth; an in-process set mirrors it so a single
// tick never pays a query per candidate. Entries in the mirror never
// expire within a process lifetime; only the store query is windowed.
//
// Mutated only by the pipeline goroutine.
type Memory struct {
	posts   database.PostRepository
	changes database.ChangeRepository
	seen    map[string]time.Time
}

func NewMemory(posts database.PostRepository, changes database.ChangeRepository) *Memory {
	return &Memory{
		posts:   posts,
		changes: changes,
		seen:    make(map[string]time.Time),
	}
}

// Warm populates the in-process mirror from the store. Called once at
// startup by the feed and history variants.
func (m *Memory) Warm(since time.Time) error {
	identities, err := m.posts.LoadIdentities(since)
	if err != nil {
		return fmt.Errorf("failed to warm dedup memory: %w", err)
	}
	for _, rec := range identities {
		m.seen[rec.Identity] = rec.PostedAt
	}
	slog.Debug("Dedup memory warmed", "identities", len(identities))
	return nil
}

// IsDuplicate reports whether the identity was published within the
// window. The in-process mirror short-circuits anything recorded this
// process lifetime; the store covers earlier runs.
func (m *Memory) IsDuplicate(identity string, window time.Duration) (bool, error) {
	if at, ok := m.seen[identity]; ok {
		if time.Since(at) <= window {
			return true, nil
		}
	}
	return m.posts.HasIdentity(identity, window)
}

// IsDuplicateChange answers the keyed window query for follow/unfollow
// events: has this (kind, subject, object) triple been recorded within
// the window. Timestamps differ per check, so the derived identity
// string is useless here.
func (m *Memory) IsDuplicateChange(kind content.Kind, subjectHandle, objectHandle string, window time.Duration) (bool, error) {
	identity := content.ChangeIdentity(kind, subjectHandle, objectHandle)
	if at, ok := m.seen[identity]; ok {
		if time.Since(at) <= window {
			return true, nil
		}
	}
	return m.changes.HasRecentChange(string(kind), subjectHandle, objectHandle, window)
}

// Record marks an identity as published. Idempotent: recording the
// same identity twice never errors and never double-counts.
func (m *Memory) Record(identity string, at time.Time) {
	if _, ok := m.seen[identity]; ok {
		return
	}
	m.seen[identity] = at
}
