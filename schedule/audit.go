/*
audit.go - Minimum-gap compliance audit

PURPOSE:
  Field teams must have at least a configured number of days between one
  leave period and the next. The auditor finds consecutive leave periods
  per employee that violate that spacing.

ALGORITHM:
  1. Group records by employee (first-seen input order).
  2. Discard records missing either date.
  3. Skip employees with fewer than 2 complete records.
  4. Stable-sort by start date; equal start dates keep input order.
  5. For each adjacent pair, gap = days from earlier end to later start
     (negative when the periods overlap).
  6. Emit a violation when gap < policy.MinGapDays, carrying the earlier
     record's supervisor.

  Only adjacent pairs are compared. A violation between non-adjacent
  periods is assumed to imply a smaller or equal one with an intervening
  period; that does not hold when the intervening period is itself very
  short. Known limitation, kept intentionally.

SEVERITY:
  Severity bands are a presentation concern computed from the gap by
  GapPolicy.Severity, not baked into detection, so the thresholds can
  change independently.

SEE ALSO:
  - report.go: Aggregate statistics over violations
*/
package schedule

import "sort"

// =============================================================================
// POLICY
// =============================================================================

// GapPolicy holds the spacing thresholds. All values are in days.
type GapPolicy struct {
	MinGapDays        int // gaps below this are violations
	CriticalBelowDays int // violations below this are critical
	WarningBelowDays  int // violations below this (and >= critical) are warnings
}

// DefaultGapPolicy returns the operational rule: 30 days minimum spacing,
// critical under 15.
func DefaultGapPolicy() GapPolicy {
	return GapPolicy{MinGapDays: 30, CriticalBelowDays: 15, WarningBelowDays: 30}
}

// Severity classifies a gap under this policy.
type Severity string

const (
	SeverityCritical  Severity = "critical"
	SeverityWarning   Severity = "warning"
	SeverityCompliant Severity = "compliant"
)

// Severity is a pure function of the gap; compliant gaps are never emitted
// as violations by Audit.
func (p GapPolicy) Severity(gapDays int) Severity {
	switch {
	case gapDays < p.CriticalBelowDays:
		return SeverityCritical
	case gapDays < p.WarningBelowDays:
		return SeverityWarning
	default:
		return SeverityCompliant
	}
}

// =============================================================================
// VIOLATION
// =============================================================================

// Violation is one adjacent pair of leave periods closer than the minimum.
type Violation struct {
	Employee   string
	PriorEnd   Date // end of the earlier period
	NextStart  Date // start of the later period
	GapDays    int  // may be negative (overlap)
	Supervisor string
}

// =============================================================================
// AUDITOR
// =============================================================================

// Audit returns all minimum-gap violations in the schedule. It holds no
// state: the same records and policy always yield the same result.
func Audit(records []LeaveRecord, policy GapPolicy) []Violation {
	groups := make(map[string][]LeaveRecord)
	var order []string
	for _, r := range records {
		if _, seen := groups[r.Employee]; !seen {
			order = append(order, r.Employee)
		}
		groups[r.Employee] = append(groups[r.Employee], r)
	}

	var violations []Violation
	for _, employee := range order {
		complete := make([]LeaveRecord, 0, len(groups[employee]))
		for _, r := range groups[employee] {
			if r.Complete() {
				complete = append(complete, r)
			}
		}
		if len(complete) < 2 {
			continue
		}

		sort.SliceStable(complete, func(i, j int) bool {
			return complete[i].Start.Before(complete[j].Start)
		})

		for i := 0; i < len(complete)-1; i++ {
			gap := DaysBetween(complete[i].End, complete[i+1].Start)
			if gap < policy.MinGapDays {
				violations = append(violations, Violation{
					Employee:   employee,
					PriorEnd:   complete[i].End,
					NextStart:  complete[i+1].Start,
					GapDays:    gap,
					Supervisor: complete[i].Supervisor,
				})
			}
		}
	}

	return violations
}
