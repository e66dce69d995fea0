/*
errors.go - Centralized error types for the schedule engine

PURPOSE:
  All hard-failure errors in one place. The engine absorbs per-record
  anomalies (malformed dates, unknown cities, rows without an employee)
  locally; the only errors surfaced to callers are structural ones, so
  analysis over a failed fetch is never mistaken for analysis over an
  empty team.

USAGE:
  if errors.Is(err, schedule.ErrEmptyDataset) { ... }

SEE ALSO:
  - normalize.go: The only producer of these errors
*/
package schedule

import "errors"

var (
	// ErrEmptyDataset is returned when the supplied dataset has no rows.
	// Zero employees is ambiguous with a failed upstream fetch, so the
	// engine refuses to proceed rather than report an empty-but-clean run.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrNoEmployeeColumn is returned when the employee column can be
	// resolved neither by header name nor by position. Without it every
	// row would be dropped, which is indistinguishable from bad input.
	ErrNoEmployeeColumn = errors.New("no employee column in dataset")
)
