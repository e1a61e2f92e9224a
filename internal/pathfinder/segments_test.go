package pathfinder_test

import (
	"testing"

	"github.com/UnknownOlympus/courier/internal/pathfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegments(t *testing.T) {
	t.Parallel()
	g, _ := line()

	t.Run("legs of a path", func(t *testing.T) {
		t.Parallel()
		segments, err := pathfinder.Segments(g, []string{"A", "B", "C"})

		require.NoError(t, err)
		require.Len(t, segments, 2)
		assert.Equal(t, "A", segments[0].From)
		assert.Equal(t, "B", segments[0].To)
		assert.Equal(t, "C", segments[1].To)
		assert.Positive(t, segments[1].Distance)
	})

	t.Run("single node has no legs", func(t *testing.T) {
		t.Parallel()
		segments, err := pathfinder.Segments(g, []string{"A"})

		require.NoError(t, err)
		assert.Empty(t, segments)
	})

	t.Run("missing edge", func(t *testing.T) {
		t.Parallel()
		_, err := pathfinder.PathWeight(g, []string{"A", "C"})

		require.Error(t, err)
		assert.ErrorContains(t, err, `no edge between "A" and "C"`)
	})

	t.Run("weight equals solver result", func(t *testing.T) {
		t.Parallel()
		res, err := pathfinder.ShortestPath(g, "C", "A")
		require.NoError(t, err)

		total, err := pathfinder.PathWeight(g, res.Path)

		require.NoError(t, err)
		assert.Equal(t, res.Weight, total)
	})
}
