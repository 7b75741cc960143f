package postgres

import (
	"database/sql"
	"fmt"
)

// rowsAdapter exposes the result set of a raw Query as repo.Rows.
// The schema verifiers and initializers read catalog tables such as
// information_schema.columns through it. A failed Query leaves Rows
// nil, so the adapter behaves as an empty result set in that case.
type rowsAdapter struct {
	*sql.Rows
}

func (ra rowsAdapter) Close() {
	if ra.Rows == nil {
		return
	}
	// Err reports the close error too
	_ = ra.Rows.Close()
}

func (ra rowsAdapter) Next() bool {
	return ra.Rows != nil && ra.Rows.Next()
}

func (ra rowsAdapter) Err() error {
	if ra.Rows == nil {
		return nil
	}
	return MapError(ra.Rows.Err())
}

// Values scans the current row into a fresh slice with one element per
// column. Text columns which the driver reports as []byte are returned
// as strings, so callers may compare them directly.
func (ra rowsAdapter) Values() ([]any, error) {
	names, err := ra.Columns()
	if err != nil {
		return nil, fmt.Errorf("column-names: %w", err)
	}
	vals := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err = ra.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	for i, v := range vals {
		if b, ok := v.([]byte); ok {
			vals[i] = string(b)
		}
	}
	return vals, nil
}
