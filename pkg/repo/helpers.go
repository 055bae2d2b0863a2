package repo

import (
	"fmt"
	"strings"
)

// FormatLimitOffset returns a LIMIT/OFFSET clause for the given values.
// Zero values are omitted so the clause can be appended unconditionally.
func FormatLimitOffset(limit, offset int) string {
	if limit > 0 && offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	}
	if limit > 0 {
		return fmt.Sprintf("LIMIT %d", limit)
	}
	if offset > 0 {
		return fmt.Sprintf("OFFSET %d", offset)
	}
	return ""
}

// BatchInsertValues renders the placeholder groups for a multi-row INSERT,
// e.g. ($1, $2), ($3, $4), and flattens the row values into one args slice.
func BatchInsertValues(rows [][]interface{}) (string, []interface{}) {
	if len(rows) == 0 {
		return "", nil
	}
	groups := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*len(rows[0]))
	n := 1
	for _, row := range rows {
		placeholders := make([]string, 0, len(row))
		for _, v := range row {
			placeholders = append(placeholders, fmt.Sprintf("$%d", n))
			args = append(args, v)
			n++
		}
		groups = append(groups, "("+strings.Join(placeholders, ", ")+")")
	}
	return strings.Join(groups, ", "), args
}
