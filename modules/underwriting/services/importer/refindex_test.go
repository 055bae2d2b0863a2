package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceIndex(t *testing.T) {
	ix := NewReferenceIndex()

	require.NoError(t, ix.Register(KindDisease, "D1", 10))
	require.NoError(t, ix.Register(KindQuestion, "Q1", 20))

	// Kinds are separate namespaces.
	require.NoError(t, ix.Register(KindQuestion, "D1", 30))

	id, ok := ix.Lookup(KindDisease, "D1")
	assert.True(t, ok)
	assert.Equal(t, int64(10), id)

	_, ok = ix.Lookup(KindDisease, "Q1")
	assert.False(t, ok)
	assert.True(t, ix.Has(KindQuestion, "Q1"))
	assert.Equal(t, 3, ix.Len())
}

func TestReferenceIndex_FirstRegistrationWins(t *testing.T) {
	ix := NewReferenceIndex()

	require.NoError(t, ix.Register(KindDisease, "D1", 10))
	err := ix.Register(KindDisease, "D1", 11)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	id, _ := ix.Lookup(KindDisease, "D1")
	assert.Equal(t, int64(10), id)
}
