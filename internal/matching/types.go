// Package matching reconciles storage folders with CRM member records.
// Folders are labeled free-text by staff and members carry structured
// fields, so the two sides share no key; the package parses folder
// labels, scores name similarity, and produces a confidence-ranked
// one-to-one assignment for human review.
package matching

import (
	"strings"
	"time"
)

// MatchType buckets a confidence score for the review workflow.
type MatchType string

const (
	MatchTypeExact   MatchType = "exact"
	MatchTypeFuzzy   MatchType = "fuzzy"
	MatchTypePartial MatchType = "partial"
	MatchTypeManual  MatchType = "manual"
)

// Confidence thresholds for match type buckets.
const (
	ExactMatchThreshold   = 95
	FuzzyMatchThreshold   = 80
	PartialMatchThreshold = 60
)

// MatchTypeFor returns the review bucket for a confidence score.
func MatchTypeFor(confidence int) MatchType {
	switch {
	case confidence >= ExactMatchThreshold:
		return MatchTypeExact
	case confidence >= FuzzyMatchThreshold:
		return MatchTypeFuzzy
	case confidence >= PartialMatchThreshold:
		return MatchTypePartial
	default:
		return MatchTypeManual
	}
}

// FolderRecord is one storage folder nominally holding one member's documents.
// Name is the raw label as staff typed it; Parsed is recomputed on every scan
// and never treated as authoritative.
type FolderRecord struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	FullPath       string     `json:"full_path,omitempty"`
	ParentID       string     `json:"parent_id,omitempty"`
	Parsed         ParsedName `json:"parsed_name"`
	FileCount      int        `json:"file_count"`
	SubfolderCount int        `json:"subfolder_count"`
	LastModified   time.Time  `json:"last_modified,omitzero"`
}

// MemberRecord is a read-only CRM member snapshot. The engine never mutates
// it; linkage updates go through the apply step.
type MemberRecord struct {
	MemberID  string `json:"member_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Status    string `json:"status,omitempty"`
	County    string `json:"county,omitempty"`
}

// FullName returns "{first} {last}" trimmed.
func (m MemberRecord) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// MatchSuggestion pairs one folder with one member at a confidence level.
type MatchSuggestion struct {
	Folder               FolderRecord `json:"folder"`
	Member               MemberRecord `json:"member"`
	Confidence           int          `json:"confidence"`
	MatchType            MatchType    `json:"match_type"`
	Reasons              []string     `json:"reasons"`
	RequiresManualReview bool         `json:"requires_manual_review"`
}

// MatchStats summarizes one assignment run.
type MatchStats struct {
	TotalFolders     int `json:"total_folders"`
	TotalMembers     int `json:"total_members"`
	ExactMatches     int `json:"exact_matches"`
	FuzzyMatches     int `json:"fuzzy_matches"`
	PartialMatches   int `json:"partial_matches"`
	ManualMatches    int `json:"manual_matches"`
	RequiresReview   int `json:"requires_review"`
	UnmatchedFolders int `json:"unmatched_folders"`
	UnmatchedMembers int `json:"unmatched_members"`
}

// MatchResult is the full outcome of one assignment run. It is derived
// entirely from the two input lists and is recomputable at any time.
type MatchResult struct {
	Suggestions      []MatchSuggestion `json:"suggestions"`
	UnmatchedFolders []FolderRecord    `json:"unmatched_folders"`
	UnmatchedMembers []MemberRecord    `json:"unmatched_members"`
	Stats            MatchStats        `json:"stats"`
}
