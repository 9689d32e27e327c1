package database

import (
	"fmt"
	"time"
)

var _ PostRepository = (*PostRepo)(nil)

// PostRepo handles database operations for publish records.
type PostRepo struct {
	db *DB
}

func NewPostRepository(db *DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) SavePost(post Post) error {
	_, err := r.db.Exec(`
		INSERT INTO posts (identity, change_id, text, platform_post_id, posted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (identity) DO NOTHING
	`, post.Identity, post.ChangeID, post.Text, post.PlatformPostID, post.PostedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

func (r *PostRepo) HasIdentity(identity string, window time.Duration) (bool, error) {
	cutoff := time.Now().UTC().Add(-window)

	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM posts WHERE identity = ? AND posted_at > ?
	`, identity, cutoff).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check identity: %w", err)
	}
	return count > 0, nil
}

func (r *PostRepo) LoadIdentities(since time.Time) ([]IdentityRecord, error) {
	rows, err := r.db.Query(`
		SELECT identity, posted_at FROM posts WHERE posted_at > ?
	`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to load identities: %w", err)
	}
	defer rows.Close()

	var identities []IdentityRecord
	for rows.Next() {
		var rec IdentityRecord
		if err := rows.Scan(&rec.Identity, &rec.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan identity row: %w", err)
		}
		identities = append(identities, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating identity rows: %w", err)
	}
	return identities, nil
}

func (r *PostRepo) PostCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}
