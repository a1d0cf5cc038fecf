// Package levenshtein computes edit distances between short strings and picks
// the closest candidate for "did you mean" hints.
package levenshtein

import "strings"

// Distance returns the minimum number of single-rune insertions, deletions
// and substitutions that turn a into b. It keeps one column of the edit
// matrix, so space is O(len(a)).
func Distance(a, b string) int {
	s1 := []rune(a)
	s2 := []rune(b)

	if len(s1) == 0 {
		return len(s2)
	}

	if len(s2) == 0 {
		return len(s1)
	}

	column := make([]int, len(s1)+1)
	for i := range column {
		column[i] = i
	}

	for j, r2 := range s2 {
		diag := column[0]
		column[0] = j + 1

		for i, r1 := range s1 {
			above := column[i+1]

			cost := 1
			if r1 == r2 {
				cost = 0
			}

			column[i+1] = min(above+1, column[i]+1, diag+cost)
			diag = above
		}
	}

	return column[len(s1)]
}

// Closest returns the candidate nearest to target, compared
// case-insensitively, provided it lies within maxDist edits. Ties keep the
// earliest candidate. An exact match is never reported as a suggestion.
func Closest(target string, candidates []string, maxDist int) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(target))
	if needle == "" {
		return "", false
	}

	best := ""
	bestDist := maxDist + 1

	for _, c := range candidates {
		d := Distance(needle, strings.ToLower(c))
		if d == 0 {
			return "", false
		}

		if d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, best != ""
}

// Hint formats the closest candidate as a trailing " (did you mean X?)"
// clause, or returns "" when nothing is close enough.
func Hint(target string, candidates []string, maxDist int) string {
	s, ok := Closest(target, candidates, maxDist)
	if !ok {
		return ""
	}

	return " (did you mean " + s + "?)"
}
