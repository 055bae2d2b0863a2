package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLimitOffset(t *testing.T) {
	assert.Equal(t, "LIMIT 10 OFFSET 20", FormatLimitOffset(10, 20))
	assert.Equal(t, "LIMIT 10", FormatLimitOffset(10, 0))
	assert.Equal(t, "OFFSET 20", FormatLimitOffset(0, 20))
	assert.Equal(t, "", FormatLimitOffset(0, 0))
}

func TestBatchInsertValues(t *testing.T) {
	clause, args := BatchInsertValues([][]interface{}{
		{1, "a"},
		{2, "b"},
	})
	assert.Equal(t, "($1, $2), ($3, $4)", clause)
	assert.Equal(t, []interface{}{1, "a", 2, "b"}, args)

	clause, args = BatchInsertValues(nil)
	assert.Empty(t, clause)
	assert.Nil(t, args)
}
