// Package repository provides pgx-backed access to CRM member records and
// persisted match runs.
package repository

import (
	"context"
	"fmt"

	"transition-crm/internal/db"
	"transition-crm/internal/matching"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MemberRepository reads member records and commits folder linkage updates.
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// ListActive returns the member snapshot used as the CRM side of a matching
// run. Inactive members keep their historical linkage but are not candidates.
func (r *MemberRepository) ListActive(ctx context.Context) ([]matching.MemberRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT member_id, first_name, last_name, status, county
		FROM members
		WHERE status <> 'inactive'
		ORDER BY member_id`)
	if err != nil {
		return nil, fmt.Errorf("list active members: %w", err)
	}
	defer rows.Close()

	members := []matching.MemberRecord{}
	for rows.Next() {
		var m matching.MemberRecord
		if err := rows.Scan(&m.MemberID, &m.FirstName, &m.LastName, &m.Status, &m.County); err != nil {
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate member rows: %w", err)
	}

	return members, nil
}

// ApplyMatchParams carries one confirmed folder linkage for a member.
type ApplyMatchParams struct {
	MemberID   string
	FolderID   string
	FolderName string
	Confidence int
	FileCount  int
}

// ApplyMatch writes a confirmed folder linkage onto one member row. This is
// the commit step for a single confirmed suggestion; callers retry it
// independently per member.
func (r *MemberRepository) ApplyMatch(ctx context.Context, p ApplyMatchParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE members
		SET folder_id = $2,
		    folder_name = $3,
		    match_confidence = $4,
		    folder_file_count = $5,
		    folder_matched_at = now(),
		    updated_at = now()
		WHERE member_id = $1`,
		p.MemberID, p.FolderID, p.FolderName, p.Confidence, p.FileCount)
	if err != nil {
		return fmt.Errorf("apply match for member %s: %w", p.MemberID, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
