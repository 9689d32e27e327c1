package database

import (
	"fmt"
	"time"
)

var _ ChangeRepository = (*ChangeRepo)(nil)

// ChangeRepo handles database operations for follow/unfollow changes.
type ChangeRepo struct {
	db *DB
}

func NewChangeRepository(db *DB) *ChangeRepo {
	return &ChangeRepo{db: db}
}

func (r *ChangeRepo) SaveChange(change Change) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO changes (
			kind, athlete, athlete_handle, target_name,
			target_handle, target_followers, drama_score, occurred_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, change.Kind, change.Athlete, change.AthleteHandle, change.TargetName,
		change.TargetHandle, change.TargetFollowers, change.DramaScore,
		change.OccurredAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to save change: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get change ID: %w", err)
	}
	return id, nil
}

func (r *ChangeRepo) MarkPosted(changeID int64) error {
	_, err := r.db.Exec(`UPDATE changes SET posted = 1 WHERE id = ?`, changeID)
	if err != nil {
		return fmt.Errorf("failed to mark change as posted: %w", err)
	}
	return nil
}

func (r *ChangeRepo) RecentChanges(limit int) ([]Change, error) {
	rows, err := r.db.Query(`
		SELECT id, kind, athlete, athlete_handle, target_name, target_handle,
		       target_followers, drama_score, occurred_at, posted, created_at
		FROM changes
		ORDER BY occurred_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent changes: %w", err)
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var c Change
		err := rows.Scan(&c.ID, &c.Kind, &c.Athlete, &c.AthleteHandle,
			&c.TargetName, &c.TargetHandle, &c.TargetFollowers,
			&c.DramaScore, &c.OccurredAt, &c.Posted, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change row: %w", err)
		}
		changes = append(changes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change rows: %w", err)
	}
	return changes, nil
}

func (r *ChangeRepo) HasRecentChange(kind, athleteHandle, targetHandle string, window time.Duration) (bool, error) {
	cutoff := time.Now().UTC().Add(-window)

	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM changes
		WHERE kind = ? AND athlete_handle = ? AND target_handle = ?
		  AND occurred_at > ?
	`, kind, athleteHandle, targetHandle, cutoff).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check recent change: %w", err)
	}
	return count > 0, nil
}

func (r *ChangeRepo) SaveSnapshot(athleteHandle string, followingCount int, takenAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO snapshots (athlete_handle, following_count, taken_at)
		VALUES (?, ?, ?)
	`, athleteHandle, followingCount, takenAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *ChangeRepo) Stats() (*Stats, error) {
	stats := &Stats{}

	err := r.db.QueryRow(`SELECT COUNT(*) FROM changes`).Scan(&stats.TotalChanges)
	if err != nil {
		return nil, fmt.Errorf("failed to count changes: %w", err)
	}

	rows, err := r.db.Query(`SELECT kind, COUNT(*) FROM changes GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to count changes by kind: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan kind count: %w", err)
		}
		switch kind {
		case "follow":
			stats.Follows = count
		case "unfollow":
			stats.Unfollows = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kind counts: %w", err)
	}

	err = r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&stats.TotalPosts)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	topRows, err := r.db.Query(`
		SELECT athlete, COUNT(*) AS changes FROM changes
		GROUP BY athlete ORDER BY changes DESC LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get top athletes: %w", err)
	}
	defer topRows.Close()

	for topRows.Next() {
		var a AthleteActivity
		if err := topRows.Scan(&a.Athlete, &a.Changes); err != nil {
			return nil, fmt.Errorf("failed to scan top athlete row: %w", err)
		}
		stats.TopAthletes = append(stats.TopAthletes, a)
	}
	if err := topRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top athletes: %w", err)
	}

	return stats, nil
}
