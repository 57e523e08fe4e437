// Package handlers implements the HTTP handlers of the match API.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"transition-crm/internal/api"
	"transition-crm/internal/db"
	"transition-crm/internal/matching"
	"transition-crm/internal/repository"
	"transition-crm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type scanRunner interface {
	RunScan(ctx context.Context, minConfidence int) (*service.ScanOutcome, error)
}

type matchApplier interface {
	ApplyConfirmed(ctx context.Context, items []service.ApplyItem) []service.ApplyOutcome
}

type runReader interface {
	GetRun(ctx context.Context, id uuid.UUID) (*repository.MatchRun, error)
	ListSuggestions(ctx context.Context, runID uuid.UUID, filter repository.SuggestionFilter) ([]repository.StoredSuggestion, error)
}

// MatchHandler handles matching run and apply HTTP requests.
type MatchHandler struct {
	scans     scanRunner
	applies   matchApplier
	runs      runReader
	validator *validator.Validate
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(scans scanRunner, applies matchApplier, runs runReader) *MatchHandler {
	return &MatchHandler{
		scans:     scans,
		applies:   applies,
		runs:      runs,
		validator: validator.New(),
	}
}

// TriggerRunRequest optionally overrides the candidate confidence floor.
type TriggerRunRequest struct {
	ConfidenceThreshold *int `json:"confidence_threshold,omitempty"`
}

// TriggerRun starts a matching scan and returns the full result.
func (h *MatchHandler) TriggerRun(c *gin.Context) {
	var req TriggerRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			api.SendValidationError(c, "Invalid request body", err.Error())
			return
		}
	}

	minConfidence := matching.DefaultMinConfidence
	if req.ConfidenceThreshold != nil {
		minConfidence = *req.ConfidenceThreshold
	}

	outcome, err := h.scans.RunScan(c.Request.Context(), minConfidence)
	if err != nil {
		api.SendError(c, http.StatusInternalServerError, api.ErrCodeInternal, "Matching scan failed", err.Error())
		return
	}

	api.SendSuccess(c, http.StatusCreated, outcome)
}

// GetRun returns one persisted run's header and stats.
func (h *MatchHandler) GetRun(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.SendValidationError(c, "Invalid run ID", err.Error())
		return
	}

	run, err := h.runs.GetRun(c.Request.Context(), runID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			api.SendNotFound(c, "Match run")
			return
		}
		api.SendError(c, http.StatusInternalServerError, api.ErrCodeInternal, "Failed to load run", err.Error())
		return
	}

	api.SendSuccess(c, http.StatusOK, run)
}

// ListSuggestions returns one run's suggestions, optionally filtered by
// match_type or requires_review.
func (h *MatchHandler) ListSuggestions(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.SendValidationError(c, "Invalid run ID", err.Error())
		return
	}

	var filter repository.SuggestionFilter
	if v := c.Query("match_type"); v != "" {
		switch matchType := matching.MatchType(v); matchType {
		case matching.MatchTypeExact, matching.MatchTypeFuzzy, matching.MatchTypePartial, matching.MatchTypeManual:
			filter.MatchType = &matchType
		default:
			api.SendValidationError(c, "Invalid match_type", "must be one of: exact, fuzzy, partial, manual")
			return
		}
	}
	if v := c.Query("requires_review"); v != "" {
		requiresReview := v == "true"
		filter.RequiresReview = &requiresReview
	}

	// The run must exist so an unknown ID is a 404, not an empty list.
	if _, err := h.runs.GetRun(c.Request.Context(), runID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			api.SendNotFound(c, "Match run")
			return
		}
		api.SendError(c, http.StatusInternalServerError, api.ErrCodeInternal, "Failed to load run", err.Error())
		return
	}

	suggestions, err := h.runs.ListSuggestions(c.Request.Context(), runID, filter)
	if err != nil {
		api.SendError(c, http.StatusInternalServerError, api.ErrCodeInternal, "Failed to list suggestions", err.Error())
		return
	}

	api.SendSuccess(c, http.StatusOK, suggestions)
}

// ApplyRequest carries the confirmed matches to commit.
type ApplyRequest struct {
	Items []service.ApplyItem `json:"items" binding:"required"`
}

// ApplyResponse reports per-item commit outcomes.
type ApplyResponse struct {
	Outcomes []service.ApplyOutcome `json:"outcomes"`
	Applied  int                    `json:"applied"`
	Failed   int                    `json:"failed"`
}

// Apply commits confirmed matches. Outcomes are reported per item; a partial
// failure is still a 200 with the failed items marked.
func (h *MatchHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if len(req.Items) == 0 {
		api.SendValidationError(c, "No items to apply", "items must not be empty")
		return
	}
	for i, item := range req.Items {
		if err := h.validator.Struct(item); err != nil {
			api.SendValidationError(c, "Invalid apply item", err.Error())
			return
		}
		memberSeen := false
		for j := 0; j < i; j++ {
			if req.Items[j].MemberID == item.MemberID {
				memberSeen = true
			}
		}
		if memberSeen {
			api.SendValidationError(c, "Duplicate member in batch", item.MemberID)
			return
		}
	}

	outcomes := h.applies.ApplyConfirmed(c.Request.Context(), req.Items)

	resp := ApplyResponse{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Applied {
			resp.Applied++
		} else {
			resp.Failed++
		}
	}

	api.SendSuccess(c, http.StatusOK, resp)
}
