package db

import (
	"context"
	"fmt"
	"strings"
)

// postgresMaxParams is the bind-parameter limit of one extended-protocol message.
const postgresMaxParams = 65535

// MaxRowsPerInsert is the largest multi-row VALUES list a table with cols
// columns can take in one statement.
func MaxRowsPerInsert(cols int) int {
	return postgresMaxParams / cols
}

// bulkInsert runs prefix followed by one "($1, ...)" group per row, each
// row contributing len(row) arguments. suffix is appended verbatim.
func bulkInsert(ctx context.Context, db DBTX, prefix, suffix string, cols int, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(rows)*cols > postgresMaxParams {
		return 0, fmt.Errorf("bulk insert: %d rows of %d columns exceed the parameter limit", len(rows), cols)
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + len(suffix) + len(rows)*cols*6)
	sb.WriteString(prefix)
	args := make([]any, 0, len(rows)*cols)
	n := 1
	for i, row := range rows {
		if len(row) != cols {
			return 0, fmt.Errorf("bulk insert: row %d has %d values, want %d", i, len(row), cols)
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('(')
		for c := range cols {
			if c > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "$%d", n)
			n++
		}
		sb.WriteByte(')')
		args = append(args, row...)
	}
	sb.WriteString(suffix)

	res, err := db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
