// Package database provides database operations for the scheme eligibility engine.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scheme-eligibility-engine/internal/models"
)

// SchemeRepository handles scheme catalog database operations.
type SchemeRepository struct {
	db *DB
}

// NewSchemeRepository creates a new scheme repository.
func NewSchemeRepository(db *DB) *SchemeRepository {
	return &SchemeRepository{db: db}
}

// Create inserts a new scheme into the catalog.
func (r *SchemeRepository) Create(ctx context.Context, scheme *models.SchemeCreate) (string, error) {
	criteriaJSON, err := json.Marshal(scheme.Criteria)
	if err != nil {
		return "", fmt.Errorf("failed to marshal criteria: %w", err)
	}

	query := `
		INSERT INTO schemes (
			id, name, description, department, category, eligibility_criteria,
			benefits, documents_required, application_process, application_fee,
			processing_time, official_website, helpline_number, status, tags,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		RETURNING id`

	id := uuid.New().String()
	now := time.Now().UTC()

	err = r.db.QueryRowContext(ctx, query,
		id,
		scheme.Name,
		scheme.Description,
		scheme.Department,
		scheme.Category,
		string(criteriaJSON),
		scheme.Benefits,
		scheme.DocumentsRequired,
		scheme.ApplicationProcess,
		scheme.ApplicationFee,
		scheme.ProcessingTime,
		scheme.OfficialWebsite,
		scheme.HelplineNumber,
		string(scheme.Status),
		scheme.Tags,
		now,
	).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create scheme: %w", err)
	}

	return id, nil
}

// GetByID fetches a single scheme by its id.
func (r *SchemeRepository) GetByID(ctx context.Context, id string) (*models.Scheme, error) {
	query := `
		SELECT id, name, description, department, category, eligibility_criteria,
		       benefits, documents_required, application_process, application_fee,
		       processing_time, official_website, helpline_number, status, tags,
		       launch_date, created_at, updated_at
		FROM schemes
		WHERE id = $1`

	scheme, err := scanScheme(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrSchemeNotFound
		}
		return nil, fmt.Errorf("failed to get scheme: %w", err)
	}

	return scheme, nil
}

// GetByIDs fetches schemes by id, preserving the requested order.
func (r *SchemeRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Scheme, error) {
	if len(ids) == 0 {
		return []models.Scheme{}, nil
	}

	query := `
		SELECT id, name, description, department, category, eligibility_criteria,
		       benefits, documents_required, application_process, application_fee,
		       processing_time, official_website, helpline_number, status, tags,
		       launch_date, created_at, updated_at
		FROM schemes
		WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get schemes: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.Scheme, len(ids))
	for rows.Next() {
		scheme, err := scanScheme(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheme: %w", err)
		}
		byID[scheme.ID] = *scheme
	}

	ordered := make([]models.Scheme, 0, len(ids))
	for _, id := range ids {
		if scheme, ok := byID[id]; ok {
			ordered = append(ordered, scheme)
		}
	}

	return ordered, nil
}

// GetAllActive returns all active schemes in catalog order.
func (r *SchemeRepository) GetAllActive(ctx context.Context) ([]models.Scheme, error) {
	query := `
		SELECT id, name, description, department, category, eligibility_criteria,
		       benefits, documents_required, application_process, application_fee,
		       processing_time, official_website, helpline_number, status, tags,
		       launch_date, created_at, updated_at
		FROM schemes
		WHERE status = 'active'
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active schemes: %w", err)
	}
	defer rows.Close()

	var schemes []models.Scheme
	for rows.Next() {
		scheme, err := scanScheme(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheme: %w", err)
		}
		schemes = append(schemes, *scheme)
	}

	return schemes, nil
}

// BulkInsert inserts multiple schemes, continuing past per-row failures.
func (r *SchemeRepository) BulkInsert(ctx context.Context, schemes []*models.SchemeCreate) (*models.BulkInsertResult, error) {
	result := &models.BulkInsertResult{}

	for _, scheme := range schemes {
		if _, err := r.Create(ctx, scheme); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", scheme.Name, err))
			continue
		}
		result.InsertedCount++
	}

	return result, nil
}

// scanScheme reads one scheme row, decoding the criteria JSON column.
func scanScheme(row pgx.Row) (*models.Scheme, error) {
	var scheme models.Scheme
	var criteriaJSON string

	err := row.Scan(
		&scheme.ID,
		&scheme.Name,
		&scheme.Description,
		&scheme.Department,
		&scheme.Category,
		&criteriaJSON,
		&scheme.Benefits,
		&scheme.DocumentsRequired,
		&scheme.ApplicationProcess,
		&scheme.ApplicationFee,
		&scheme.ProcessingTime,
		&scheme.OfficialWebsite,
		&scheme.HelplineNumber,
		&scheme.Status,
		&scheme.Tags,
		&scheme.LaunchDate,
		&scheme.CreatedAt,
		&scheme.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(criteriaJSON), &scheme.Criteria); err != nil {
		return nil, fmt.Errorf("failed to unmarshal criteria: %w", err)
	}

	return &scheme, nil
}
