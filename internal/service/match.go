// Package service orchestrates matching runs and linkage commits around the
// pure engine in internal/matching.
package service

import (
	"context"
	"fmt"
	"time"

	"transition-crm/internal/logger"
	"transition-crm/internal/matching"
	"transition-crm/internal/repository"

	"github.com/google/uuid"
)

// FolderSource provides the storage side of the matching inputs.
type FolderSource interface {
	ListMemberFolders(ctx context.Context) ([]matching.FolderRecord, error)
}

type memberLister interface {
	ListActive(ctx context.Context) ([]matching.MemberRecord, error)
}

type runStore interface {
	CreateRun(ctx context.Context, run repository.MatchRun, suggestions []matching.MatchSuggestion) error
}

// MatchService runs matching scans over the two input sources.
type MatchService struct {
	folders FolderSource
	members memberLister
	runs    runStore
	scoring matching.ScoreConfig
}

// NewMatchService creates a new match service.
func NewMatchService(folders FolderSource, members memberLister, runs runStore) *MatchService {
	return &MatchService{
		folders: folders,
		members: members,
		runs:    runs,
		scoring: matching.DefaultScoreConfig,
	}
}

// ScanOutcome is the result of one completed scan.
type ScanOutcome struct {
	RunID         uuid.UUID            `json:"run_id"`
	StartedAt     time.Time            `json:"started_at"`
	FinishedAt    time.Time            `json:"finished_at"`
	MinConfidence int                  `json:"min_confidence"`
	Result        matching.MatchResult `json:"result"`
}

// RunScan fetches folders and members, runs the assignment and persists the
// run for review. An out-of-range threshold falls back to the engine default
// rather than failing; the scan itself is deterministic and safe to re-run.
func (s *MatchService) RunScan(ctx context.Context, minConfidence int) (*ScanOutcome, error) {
	if minConfidence < 0 || minConfidence > 100 {
		minConfidence = matching.DefaultMinConfidence
	}

	startedAt := time.Now().UTC()

	folders, err := s.folders.ListMemberFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch folders: %w", err)
	}
	members, err := s.members.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch members: %w", err)
	}

	result := s.scoring.Assign(folders, members, minConfidence)

	run := repository.MatchRun{
		ID:            uuid.New(),
		StartedAt:     startedAt,
		FinishedAt:    time.Now().UTC(),
		MinConfidence: minConfidence,
		Stats:         result.Stats,
	}
	if err := s.runs.CreateRun(ctx, run, result.Suggestions); err != nil {
		return nil, fmt.Errorf("persist match run: %w", err)
	}

	logger.Info().
		Str("run_id", run.ID.String()).
		Int("folders", result.Stats.TotalFolders).
		Int("members", result.Stats.TotalMembers).
		Int("suggestions", len(result.Suggestions)).
		Int("requires_review", result.Stats.RequiresReview).
		Msg("matching scan complete")

	return &ScanOutcome{
		RunID:         run.ID,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		MinConfidence: minConfidence,
		Result:        result,
	}, nil
}
