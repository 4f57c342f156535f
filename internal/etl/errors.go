// Package etl implements the reconciliation pipeline that turns a staged
// batch of scraped listings into durable rows: normalisation, diffing
// against already-persisted keys, and an idempotent bulk load.
package etl

import "fmt"

// ShapeError reports a row that fails expected-format parsing. The batch
// policy is fail-loud: normalisation aborts the whole batch rather than
// silently dropping the row, since a dropped row is permanent data loss
// for that listing.
type ShapeError struct {
	Key   int64  // provider-assigned listing key of the offending row
	Field string
	Value string
	Err   error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("listing %d: bad %s %q: %v", e.Key, e.Field, e.Value, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }
