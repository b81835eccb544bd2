package scoreboard

import (
	"cmp"
	"slices"

	"github.com/preston-bernstein/live-scoreboard/internal/domain/matches"
)

// rank orders matches in place: highest total first, and among equal totals the
// most recently started first.
func rank(list []matches.Match) {
	slices.SortFunc(list, func(a, b matches.Match) int {
		return cmp.Compare(b.StartOrder, a.StartOrder)
	})
	slices.SortStableFunc(list, func(a, b matches.Match) int {
		return cmp.Compare(b.TotalScore(), a.TotalScore())
	})
}

func byStartOrder(list []matches.Match) {
	slices.SortFunc(list, func(a, b matches.Match) int {
		return cmp.Compare(a.StartOrder, b.StartOrder)
	})
}
