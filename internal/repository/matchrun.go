package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transition-crm/internal/db"
	"transition-crm/internal/matching"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchRun is one persisted matching pass. Runs are recomputable snapshots
// kept for the review workflow, not authoritative linkage state.
type MatchRun struct {
	ID            uuid.UUID           `json:"id"`
	StartedAt     time.Time           `json:"started_at"`
	FinishedAt    time.Time           `json:"finished_at"`
	MinConfidence int                 `json:"min_confidence"`
	Stats         matching.MatchStats `json:"stats"`
}

// StoredSuggestion is one persisted suggestion row of a match run.
type StoredSuggestion struct {
	RunID          uuid.UUID          `json:"run_id"`
	FolderID       string             `json:"folder_id"`
	FolderName     string             `json:"folder_name"`
	MemberID       string             `json:"member_id"`
	Confidence     int                `json:"confidence"`
	MatchType      matching.MatchType `json:"match_type"`
	Reasons        []string           `json:"reasons"`
	RequiresReview bool               `json:"requires_review"`
}

// SuggestionFilter narrows ListSuggestions.
type SuggestionFilter struct {
	MatchType      *matching.MatchType
	RequiresReview *bool
}

// MatchRunRepository persists match runs and their suggestions.
type MatchRunRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRunRepository creates a new match run repository.
func NewMatchRunRepository(pool *pgxpool.Pool) *MatchRunRepository {
	return &MatchRunRepository{pool: pool}
}

// CreateRun stores a run header and all of its suggestions in one
// transaction. Suggestion rows carry unique constraints on (run, member) and
// (run, folder), so a run that somehow double-assigned would be rejected
// whole rather than stored half-valid.
func (r *MatchRunRepository) CreateRun(ctx context.Context, run MatchRun, suggestions []matching.MatchSuggestion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin match run tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO match_runs (id, started_at, finished_at, min_confidence, stats)
		VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.StartedAt, run.FinishedAt, run.MinConfidence, run.Stats)
	if err != nil {
		return fmt.Errorf("insert match run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, s := range suggestions {
		batch.Queue(`
			INSERT INTO match_suggestions
				(run_id, folder_id, folder_name, member_id, confidence, match_type, reasons, requires_review)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			run.ID, s.Folder.ID, s.Folder.Name, s.Member.MemberID,
			s.Confidence, string(s.MatchType), s.Reasons, s.RequiresManualReview)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert match suggestions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit match run tx: %w", err)
	}
	return nil
}

// GetRun returns one run header by ID.
func (r *MatchRunRepository) GetRun(ctx context.Context, id uuid.UUID) (*MatchRun, error) {
	var run MatchRun
	err := r.pool.QueryRow(ctx, `
		SELECT id, started_at, finished_at, min_confidence, stats
		FROM match_runs
		WHERE id = $1`, id).
		Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.MinConfidence, &run.Stats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("get match run %s: %w", id, err)
	}
	return &run, nil
}

// ListSuggestions returns a run's suggestions ordered by confidence
// descending, optionally filtered by match type or review flag.
func (r *MatchRunRepository) ListSuggestions(ctx context.Context, runID uuid.UUID, filter SuggestionFilter) ([]StoredSuggestion, error) {
	query := `
		SELECT run_id, folder_id, folder_name, member_id, confidence, match_type, reasons, requires_review
		FROM match_suggestions
		WHERE run_id = $1`
	args := []any{runID}

	if filter.MatchType != nil {
		args = append(args, string(*filter.MatchType))
		query += fmt.Sprintf(" AND match_type = $%d", len(args))
	}
	if filter.RequiresReview != nil {
		args = append(args, *filter.RequiresReview)
		query += fmt.Sprintf(" AND requires_review = $%d", len(args))
	}
	query += " ORDER BY confidence DESC, folder_id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suggestions for run %s: %w", runID, err)
	}
	defer rows.Close()

	suggestions := []StoredSuggestion{}
	for rows.Next() {
		var s StoredSuggestion
		var matchType string
		if err := rows.Scan(&s.RunID, &s.FolderID, &s.FolderName, &s.MemberID,
			&s.Confidence, &matchType, &s.Reasons, &s.RequiresReview); err != nil {
			return nil, fmt.Errorf("scan suggestion row: %w", err)
		}
		s.MatchType = matching.MatchType(matchType)
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestion rows: %w", err)
	}

	return suggestions, nil
}
