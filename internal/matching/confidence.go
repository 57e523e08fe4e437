package matching

import (
	"fmt"
	"strings"
)

// Evaluation is the confidence model output for one folder/member pair.
type Evaluation struct {
	Confidence           int
	Reasons              []string
	RequiresManualReview bool
}

// Score runs the additive confidence model for one folder against one member.
// Every signal contributes independently and several may fire for the same
// pair; a full-name similarity of 1.0 collects the exact, strong and weak
// full-name contributions together. The sum is clamped to 100.
func (c ScoreConfig) Score(folder FolderRecord, member MemberRecord) Evaluation {
	return c.evaluate(Parse(folder.Name), folder.Name, member)
}

func (c ScoreConfig) evaluate(parsed ParsedName, rawName string, member MemberRecord) Evaluation {
	var points int
	var reasons []string
	var flagged bool

	if parsed.HasID && parsed.ID == member.MemberID {
		points += c.IDMatchPoints
		reasons = append(reasons, fmt.Sprintf("embedded client ID %s matches member ID", parsed.ID))
	}

	fullSim := Similarity(parsed.Full, member.FullName())
	if fullSim >= c.ExactSimilarity {
		points += c.FullNameExactPoints
		reasons = append(reasons, fmt.Sprintf("exact name match (%.1f%%)", fullSim*100))
	}
	if fullSim >= c.FuzzySimilarity {
		points += c.FullNameStrongPoints
		reasons = append(reasons, fmt.Sprintf("strong name similarity (%.1f%%)", fullSim*100))
		if fullSim < c.StrongSimilarity {
			flagged = true
		}
	}
	if fullSim >= c.WeakSimilarity {
		points += c.FullNameWeakPoints
		reasons = append(reasons, fmt.Sprintf("partial name similarity (%.1f%%)", fullSim*100))
		if fullSim < c.FuzzySimilarity {
			flagged = true
		}
	}

	if parsed.First != "" && member.FirstName != "" {
		sim := Similarity(parsed.First, member.FirstName)
		if sim >= c.StrongSimilarity {
			points += c.ComponentStrongPoints
			reasons = append(reasons, fmt.Sprintf("first name match (%.1f%%)", sim*100))
		}
		if sim >= c.ComponentSimilarity {
			points += c.ComponentWeakPoints
			reasons = append(reasons, fmt.Sprintf("first name similarity (%.1f%%)", sim*100))
			if sim < c.StrongSimilarity {
				flagged = true
			}
		}
	}

	if parsed.Last != "" && member.LastName != "" {
		sim := Similarity(parsed.Last, member.LastName)
		if sim >= c.StrongSimilarity {
			points += c.ComponentStrongPoints
			reasons = append(reasons, fmt.Sprintf("last name match (%.1f%%)", sim*100))
		}
		if sim >= c.ComponentSimilarity {
			points += c.ComponentWeakPoints
			reasons = append(reasons, fmt.Sprintf("last name similarity (%.1f%%)", sim*100))
			if sim < c.StrongSimilarity {
				flagged = true
			}
		}
	}

	// Catches labels the comma strategy did not recognize as "Last, First".
	reversed := member.LastName + ", " + member.FirstName
	if revSim := Similarity(parsed.Full, reversed); revSim >= c.FuzzySimilarity {
		points += c.ReversedNamePoints
		reasons = append(reasons, fmt.Sprintf("name matches in last-first order (%.1f%%)", revSim*100))
	}

	rawLower := strings.ToLower(rawName)
	if member.FirstName != "" && strings.Contains(rawLower, strings.ToLower(member.FirstName)) {
		points += c.SubstringPoints
		reasons = append(reasons, "first name appears in folder label")
	}
	if member.LastName != "" && strings.Contains(rawLower, strings.ToLower(member.LastName)) {
		points += c.SubstringPoints
		reasons = append(reasons, "last name appears in folder label")
	}

	if points > 100 {
		points = 100
	}

	review := flagged ||
		points < c.ReviewConfidence ||
		(points > c.AmbiguousLow && points < c.AmbiguousHigh)

	return Evaluation{
		Confidence:           points,
		Reasons:              reasons,
		RequiresManualReview: review,
	}
}
