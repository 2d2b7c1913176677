// Package ranking orders analytics results by integer score.
package ranking

// SortByDescending returns a copy of items ordered by descending score.
//
// Items with equal scores keep their input order: a pass only swaps neighbours
// when the left score is strictly lower than the right one, and passes repeat
// until one completes without a swap. score is called O(n²) times in the worst
// case, so it must be cheap and free of side effects.
func SortByDescending[T any](items []T, score func(T) int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	for swapped := true; swapped; {
		swapped = false
		for i := 0; i+1 < len(sorted); i++ {
			if score(sorted[i]) < score(sorted[i+1]) {
				sorted[i], sorted[i+1] = sorted[i+1], sorted[i]
				swapped = true
			}
		}
	}
	return sorted
}
