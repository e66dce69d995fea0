/*
Package schedule provides the leave-schedule analysis engine.

PURPOSE:
  This package contains the core computations over a team leave ("folga")
  schedule: normalizing a raw spreadsheet-shaped dataset into records,
  classifying each record against a reference date, auditing the spacing
  between consecutive leave periods, and aggregating report statistics.

KEY CONCEPTS IN THIS FILE (types.go):
  - Dataset: Raw rows-and-columns input, however it was fetched
  - LeaveRecord: One normalized schedule row (immutable after Normalize)
  - LocationResolver: Collaborator that annotates records with coordinates

DESIGN PRINCIPLES:
  1. Purity: No clock reads and no I/O inside the engine; the reference date
     and the dataset are explicit inputs, so every run is reproducible.
  2. Absorption: Per-record anomalies (bad dates, unknown cities) become
     "absent" values instead of errors. Only a structurally empty dataset
     is a hard failure.
  3. Statelessness: Nothing is persisted between runs; each invocation
     computes from the dataset it was handed.

SEE ALSO:
  - normalize.go: Dataset -> []LeaveRecord
  - status.go:    Current-status classification
  - audit.go:     Minimum-gap compliance audit
  - report.go:    Aggregate reporting
*/
package schedule

import "github.com/Pedreb/cronogramadefolgas/gazetteer"

// =============================================================================
// RAW INPUT
// =============================================================================

// Dataset is an in-memory table as produced by a source.Provider. The engine
// does not know or care how it was obtained.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the dataset has no rows.
func (ds Dataset) Empty() bool { return len(ds.Rows) == 0 }

// =============================================================================
// LEAVE RECORD
// =============================================================================

// LeaveRecord is one row of the normalized schedule. Records are built once
// per analysis run and read-only thereafter.
type LeaveRecord struct {
	Employee    string // non-empty for every retained record
	Start       Date   // leave start; absent means unscheduled
	End         Date   // leave end; absent means unscheduled
	ReturnDate  Date   // return to base/field; informational only
	Origin      string
	Destination string
	Supervisor  string
	Month       string // source sheet month label; informational passthrough

	// Resolved via the gazetteer; nil when the city is unknown or blank.
	OriginCoords      *gazetteer.Coordinates
	DestinationCoords *gazetteer.Coordinates
}

// Complete reports whether the record has both dates and can take part in
// the interval audit.
func (r LeaveRecord) Complete() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// DurationDays returns the inclusive length of the leave window in days.
// ok is false for incomplete records.
func (r LeaveRecord) DurationDays() (days int, ok bool) {
	if !r.Complete() {
		return 0, false
	}
	return DaysBetween(r.Start, r.End) + 1, true
}

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// LocationResolver maps a free-text place name to coordinates.
// *gazetteer.Gazetteer satisfies this.
type LocationResolver interface {
	Resolve(name string) (gazetteer.Coordinates, bool)
}
