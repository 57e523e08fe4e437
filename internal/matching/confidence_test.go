package matching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func score(t *testing.T, folderName string, member MemberRecord) Evaluation {
	t.Helper()
	return DefaultScoreConfig.Score(FolderRecord{ID: "f1", Name: folderName}, member)
}

func TestScoreExactCommaMatch(t *testing.T) {
	eval := score(t, "Smith, John", MemberRecord{MemberID: "m1", FirstName: "John", LastName: "Smith"})

	assert.Equal(t, 100, eval.Confidence)
	assert.Equal(t, MatchTypeExact, MatchTypeFor(eval.Confidence))
	assert.False(t, eval.RequiresManualReview)
	assert.NotEmpty(t, eval.Reasons)
	assert.Contains(t, eval.Reasons[0], "exact name match")
}

func TestScoreEmbeddedIDDominatesWeakNames(t *testing.T) {
	member := MemberRecord{MemberID: "4521", FirstName: "Anything", LastName: "Else"}

	withID := score(t, "ClientID: 4521 - Random Label", member)
	withoutID := score(t, "Random Label", member)

	assert.Equal(t, 50, withID.Confidence)
	assert.Contains(t, withID.Reasons[0], "4521")
	assert.True(t, withID.RequiresManualReview)
	assert.Equal(t, MatchTypeManual, MatchTypeFor(withID.Confidence))

	// Same weak name signal without the identifier scores near zero.
	assert.Less(t, withoutID.Confidence, DefaultMinConfidence)
	assert.Greater(t, withID.Confidence-withoutID.Confidence, 40)
}

func TestScoreMisspelledInitialRequiresReview(t *testing.T) {
	eval := score(t, "J. Smyth - misc docs", MemberRecord{MemberID: "m1", FirstName: "John", LastName: "Smith"})

	// Weak full-name band (0.60) plus close last name (0.80).
	assert.Equal(t, 23, eval.Confidence)
	assert.True(t, eval.RequiresManualReview)
	assert.Equal(t, MatchTypeManual, MatchTypeFor(eval.Confidence))
}

func TestScoreReversedPlainLabel(t *testing.T) {
	// "Doe Jane" parses as first=Doe last=Jane; the reversed-name check is
	// what recognizes the swap.
	eval := score(t, "Doe Jane", MemberRecord{MemberID: "m1", FirstName: "Jane", LastName: "Doe"})

	found := false
	for _, reason := range eval.Reasons {
		if strings.Contains(reason, "last-first order") {
			found = true
		}
	}
	assert.True(t, found, "expected reversed-name reason, got %v", eval.Reasons)
	assert.Greater(t, eval.Confidence, 0)
}

func TestScoreConfidenceBounds(t *testing.T) {
	members := []MemberRecord{
		{MemberID: "1", FirstName: "John", LastName: "Smith"},
		{MemberID: "2", FirstName: "Jane", LastName: "Doe"},
		{MemberID: "3"},
	}
	labels := []string{
		"Smith, John", "ClientID: 1 Smith, John", "J. Doe", "", "folder",
		"Doe Jane documents", "completely unrelated", "ClientID: 2 - Jane Doe",
	}

	for _, label := range labels {
		for _, member := range members {
			eval := score(t, label, member)
			assert.GreaterOrEqual(t, eval.Confidence, 0, "label=%q member=%s", label, member.MemberID)
			assert.LessOrEqual(t, eval.Confidence, 100, "label=%q member=%s", label, member.MemberID)
			if eval.Confidence > 0 {
				assert.NotEmpty(t, eval.Reasons)
			}
		}
	}
}

func TestScoreManualReviewBands(t *testing.T) {
	t.Run("high confidence without weak signals is auto", func(t *testing.T) {
		eval := score(t, "Jane Doe", MemberRecord{MemberID: "m1", FirstName: "Jane", LastName: "Doe"})
		assert.GreaterOrEqual(t, eval.Confidence, DefaultScoreConfig.ReviewConfidence)
		assert.False(t, eval.RequiresManualReview)
	})

	t.Run("below review threshold flags", func(t *testing.T) {
		eval := score(t, "J. Doe", MemberRecord{MemberID: "m1", FirstName: "Jane", LastName: "Doe"})
		assert.Less(t, eval.Confidence, DefaultScoreConfig.ReviewConfidence)
		assert.True(t, eval.RequiresManualReview)
	})
}

func TestMatchTypeFor(t *testing.T) {
	tests := []struct {
		confidence int
		expected   MatchType
	}{
		{100, MatchTypeExact},
		{95, MatchTypeExact},
		{94, MatchTypeFuzzy},
		{80, MatchTypeFuzzy},
		{79, MatchTypePartial},
		{60, MatchTypePartial},
		{59, MatchTypeManual},
		{0, MatchTypeManual},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MatchTypeFor(tt.confidence), "confidence=%d", tt.confidence)
	}
}
