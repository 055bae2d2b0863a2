package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCycles(t *testing.T) {
	t.Run("acyclic", func(t *testing.T) {
		assert.Empty(t, detectCycles(map[string][]string{
			"Q1": {"Q2", "Q3"},
			"Q2": {"Q3"},
		}))
	})

	t.Run("self loop", func(t *testing.T) {
		cycles := detectCycles(map[string][]string{"Q1": {"Q1"}})
		require.Len(t, cycles, 1)
		assert.Equal(t, []string{"Q1", "Q1"}, cycles[0])
	})

	t.Run("two node cycle", func(t *testing.T) {
		cycles := detectCycles(map[string][]string{
			"Q1": {"Q2"},
			"Q2": {"Q1"},
		})
		require.Len(t, cycles, 1)
		assert.Equal(t, []string{"Q1", "Q2", "Q1"}, cycles[0])
	})

	t.Run("cycle behind a chain", func(t *testing.T) {
		cycles := detectCycles(map[string][]string{
			"Q1": {"Q2"},
			"Q2": {"Q3"},
			"Q3": {"Q2"},
		})
		require.Len(t, cycles, 1)
		assert.Equal(t, []string{"Q2", "Q3", "Q2"}, cycles[0])
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, detectCycles(nil))
	})

	t.Run("long chain", func(t *testing.T) {
		const n = 200000
		edges := make(map[string][]string, n)
		for i := 0; i < n; i++ {
			edges[fmt.Sprintf("Q%07d", i)] = []string{fmt.Sprintf("Q%07d", i+1)}
		}
		assert.Empty(t, detectCycles(edges))

		edges[fmt.Sprintf("Q%07d", n)] = []string{"Q0000000"}
		cycles := detectCycles(edges)
		require.Len(t, cycles, 1)
		assert.Len(t, cycles[0], n+2)
	})
}
