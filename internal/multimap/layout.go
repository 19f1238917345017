package multimap

import "math"

// ComputeGrid returns the columns and rows used to tile count datasets:
// ceil(sqrt(count)) columns and the fewest rows that hold them all.
// Render and hit-test both go through this function.
func ComputeGrid(count int) (columns, rows int) {
	if count <= 0 {
		return 0, 0
	}
	columns = int(math.Ceil(math.Sqrt(float64(count))))
	rows = count / columns
	for rows*columns < count {
		rows++
	}
	return columns, rows
}
