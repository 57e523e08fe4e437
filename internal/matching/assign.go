package matching

import "sort"

// Assign runs the assignment with the default tuning.
func Assign(folders []FolderRecord, members []MemberRecord, minConfidence int) MatchResult {
	return DefaultScoreConfig.Assign(folders, members, minConfidence)
}

// Assign produces a one-to-one folder-to-member assignment. Folders are
// processed in input order; each takes its highest-confidence candidate among
// the members not yet claimed (ties broken by member input order), provided
// the confidence reaches minConfidence. Suggestions are then sorted by
// confidence descending (stable) and aggregate stats computed.
//
// The assignment is folder-order greedy, not globally optimal: an earlier
// folder can claim a member that would have scored higher against a later
// folder. This trades optimality for explainability and linear-pass
// performance; a bipartite optimal assignment (Hungarian) would be the
// replacement if exact optimality is ever required.
func (c ScoreConfig) Assign(folders []FolderRecord, members []MemberRecord, minConfidence int) MatchResult {
	used := make(map[string]bool, len(folders))
	suggestions := []MatchSuggestion{}
	unmatchedFolders := []FolderRecord{}

	for _, folder := range folders {
		folder.Parsed = Parse(folder.Name)

		bestIdx := -1
		var bestEval Evaluation
		for i, member := range members {
			if used[member.MemberID] {
				continue
			}
			eval := c.evaluate(folder.Parsed, folder.Name, member)
			if eval.Confidence < minConfidence {
				continue
			}
			if bestIdx == -1 || eval.Confidence > bestEval.Confidence {
				bestIdx = i
				bestEval = eval
			}
		}

		if bestIdx == -1 {
			unmatchedFolders = append(unmatchedFolders, folder)
			continue
		}

		member := members[bestIdx]
		used[member.MemberID] = true
		suggestions = append(suggestions, MatchSuggestion{
			Folder:               folder,
			Member:               member,
			Confidence:           bestEval.Confidence,
			MatchType:            MatchTypeFor(bestEval.Confidence),
			Reasons:              bestEval.Reasons,
			RequiresManualReview: bestEval.RequiresManualReview,
		})
	}

	unmatchedMembers := []MemberRecord{}
	for _, member := range members {
		if !used[member.MemberID] {
			unmatchedMembers = append(unmatchedMembers, member)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	stats := MatchStats{
		TotalFolders:     len(folders),
		TotalMembers:     len(members),
		UnmatchedFolders: len(unmatchedFolders),
		UnmatchedMembers: len(unmatchedMembers),
	}
	for _, s := range suggestions {
		switch s.MatchType {
		case MatchTypeExact:
			stats.ExactMatches++
		case MatchTypeFuzzy:
			stats.FuzzyMatches++
		case MatchTypePartial:
			stats.PartialMatches++
		case MatchTypeManual:
			stats.ManualMatches++
		}
		if s.RequiresManualReview {
			stats.RequiresReview++
		}
	}

	return MatchResult{
		Suggestions:      suggestions,
		UnmatchedFolders: unmatchedFolders,
		UnmatchedMembers: unmatchedMembers,
		Stats:            stats,
	}
}
