package schema

import "strings"

// SimilarityFloor is the minimum normalized similarity for a fuzzy key match.
const SimilarityFloor = 0.7

// MatchKey finds the payload key a declared property should claim. Exact hits
// win, then case-insensitive hits, then the closest key whose similarity
// clears the floor; ties keep the earliest candidate. Keys already claimed by
// other properties are excluded from matching. When nothing matches, the
// declared name itself is returned, which callers observe as an absent
// lookup.
func MatchKey(expected string, keys []string, exclude []string) string {
	for _, key := range keys {
		if key == expected {
			return key
		}
	}

	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[e] = true
	}

	for _, key := range keys {
		if excluded[key] {
			continue
		}
		if strings.EqualFold(key, expected) {
			return key
		}
	}

	best := expected
	bestScore := 0.0
	want := strings.ToLower(expected)
	for _, key := range keys {
		if excluded[key] {
			continue
		}
		score := similarity(want, strings.ToLower(key))
		if score >= SimilarityFloor && score > bestScore {
			best, bestScore = key, score
		}
	}
	return best
}

// similarity is the normalized Levenshtein ratio between two strings:
// 1 - distance/max(len). Identical strings score 1, fully disjoint strings 0.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1 - float64(prev[len(rb)])/float64(longest)
}
