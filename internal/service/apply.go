package service

import (
	"context"

	"transition-crm/internal/logger"
	"transition-crm/internal/repository"
)

type matchApplier interface {
	ApplyMatch(ctx context.Context, p repository.ApplyMatchParams) error
}

// ApplyService commits confirmed match suggestions to the CRM.
type ApplyService struct {
	members matchApplier
}

// NewApplyService creates a new apply service.
func NewApplyService(members matchApplier) *ApplyService {
	return &ApplyService{members: members}
}

// ApplyItem is one confirmed suggestion to commit.
type ApplyItem struct {
	MemberID   string `json:"member_id" validate:"required"`
	FolderID   string `json:"folder_id" validate:"required"`
	FolderName string `json:"folder_name"`
	Confidence int    `json:"confidence" validate:"gte=0,lte=100"`
	FileCount  int    `json:"file_count" validate:"gte=0"`
}

// ApplyOutcome reports one item's commit result.
type ApplyOutcome struct {
	MemberID string `json:"member_id"`
	FolderID string `json:"folder_id"`
	Applied  bool   `json:"applied"`
	Error    string `json:"error,omitempty"`
}

// ApplyConfirmed commits each confirmed match in order. Items succeed or fail
// individually; a failed item is recorded in its outcome and the rest of the
// batch proceeds. Each item is independently retryable.
func (s *ApplyService) ApplyConfirmed(ctx context.Context, items []ApplyItem) []ApplyOutcome {
	outcomes := make([]ApplyOutcome, 0, len(items))

	for _, item := range items {
		outcome := ApplyOutcome{MemberID: item.MemberID, FolderID: item.FolderID}

		err := s.members.ApplyMatch(ctx, repository.ApplyMatchParams{
			MemberID:   item.MemberID,
			FolderID:   item.FolderID,
			FolderName: item.FolderName,
			Confidence: item.Confidence,
			FileCount:  item.FileCount,
		})
		if err != nil {
			logger.Warn().
				Err(err).
				Str("member_id", item.MemberID).
				Str("folder_id", item.FolderID).
				Msg("failed to apply match, continuing batch")
			outcome.Error = err.Error()
		} else {
			outcome.Applied = true
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
