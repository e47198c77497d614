// Package database provides database operations for the scheme eligibility engine.
package database

import (
	"context"
	"fmt"
	"time"
)

// SavedSchemeRepository stores the schemes a user has bookmarked. The
// favorites filter in the portal ranks against exactly this set.
type SavedSchemeRepository struct {
	db *DB
}

// NewSavedSchemeRepository creates a new saved-scheme repository.
func NewSavedSchemeRepository(db *DB) *SavedSchemeRepository {
	return &SavedSchemeRepository{db: db}
}

// Save bookmarks a scheme for a user. Saving twice is a no-op.
func (r *SavedSchemeRepository) Save(ctx context.Context, userID, schemeID string) error {
	query := `
		INSERT INTO saved_schemes (user_id, scheme_id, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, scheme_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, schemeID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save scheme: %w", err)
	}

	return nil
}

// Remove deletes a bookmark.
func (r *SavedSchemeRepository) Remove(ctx context.Context, userID, schemeID string) error {
	query := `DELETE FROM saved_schemes WHERE user_id = $1 AND scheme_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, schemeID); err != nil {
		return fmt.Errorf("failed to remove saved scheme: %w", err)
	}

	return nil
}

// ListIDs returns the saved scheme ids for a user, oldest bookmark first.
func (r *SavedSchemeRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT scheme_id
		FROM saved_schemes
		WHERE user_id = $1
		ORDER BY saved_at, scheme_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved schemes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan saved scheme: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
