package domain

import "sort"

// DifficultyLevel classifies how hard a flashcard is.
type DifficultyLevel string

// The three difficulty levels, in canonical order.
const (
	DifficultyEasy   DifficultyLevel = "Easy"
	DifficultyMedium DifficultyLevel = "Medium"
	DifficultyHard   DifficultyLevel = "Hard"
)

// difficultyRank defines the canonical ordering Easy < Medium < Hard.
var difficultyRank = map[DifficultyLevel]int{
	DifficultyEasy:   0,
	DifficultyMedium: 1,
	DifficultyHard:   2,
}

// Valid reports whether d is one of the three known difficulty levels.
func (d DifficultyLevel) Valid() bool {
	_, ok := difficultyRank[d]
	return ok
}

// SortDifficulties returns the distinct difficulty levels present in levels,
// sorted in canonical order. Unknown levels are dropped.
func SortDifficulties(levels []DifficultyLevel) []DifficultyLevel {
	seen := make(map[DifficultyLevel]bool, len(levels))
	var out []DifficultyLevel
	for _, l := range levels {
		if !l.Valid() || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool {
		return difficultyRank[out[i]] < difficultyRank[out[j]]
	})
	return out
}
