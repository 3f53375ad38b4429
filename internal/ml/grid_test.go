package ml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridBuilder_CrossProduct(t *testing.T) {
	grid := NewGridBuilder().
		Add("a", 1, 2).
		Add("b", "x", "y", "z").
		Build()

	require.Len(t, grid, 6)

	seen := make(map[[2]any]bool)
	for _, p := range grid {
		seen[[2]any{p["a"], p["b"]}] = true
	}
	require.Len(t, seen, 6)
}

func TestGridBuilder_Empty(t *testing.T) {
	grid := NewGridBuilder().Build()
	require.Len(t, grid, 1)
	require.Empty(t, grid[0])
}

func TestCandidates(t *testing.T) {
	candidates := Candidates()
	require.Len(t, candidates, 2)

	require.Equal(t, FamilyLogistic, candidates[0].Name)
	require.Len(t, candidates[0].Grid, 27)

	require.Equal(t, FamilyTree, candidates[1].Name)
	require.Len(t, candidates[1].Grid, 18)
}

func TestCandidates_GridPointsConstructClassifiers(t *testing.T) {
	for _, c := range Candidates() {
		for _, point := range c.Grid {
			clf := c.New(point)
			require.Equal(t, c.Name, clf.Family())
		}
	}
}
