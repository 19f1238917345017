package multimap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeGrid(t *testing.T) {
	golden := []struct {
		count, columns, rows int
	}{
		{0, 0, 0}, {1, 1, 1}, {2, 2, 1}, {3, 2, 2}, {4, 2, 2}, {5, 3, 2},
		{6, 3, 2}, {7, 3, 3}, {8, 3, 3}, {9, 3, 3}, {10, 4, 3}, {11, 4, 3},
		{12, 4, 3}, {13, 4, 4}, {14, 4, 4}, {15, 4, 4}, {16, 4, 4}, {17, 5, 4},
	}
	for _, g := range golden {
		c, r := ComputeGrid(g.count)
		assert.Equal(t, g.columns, c, "columns for %d", g.count)
		assert.Equal(t, g.rows, r, "rows for %d", g.count)
	}
}

func TestComputeGridIsMinimal(t *testing.T) {
	for n := 1; n < 500; n++ {
		c, r := ComputeGrid(n)
		assert.GreaterOrEqual(t, c*r, n)
		assert.Less(t, (r-1)*c, n)
	}
}
