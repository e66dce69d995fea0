/*
report.go - Aggregate reporting over the normalized schedule

PURPOSE:
  Computes the summaries backing the reports surface: per-supervisor
  workload, most frequent origin/destination cities, and audit summary
  statistics.

PRECISION:
  The mean interval uses shopspring/decimal rather than float64 so the
  one-decimal display value rounds exactly.

SEE ALSO:
  - audit.go:  Produces the violations summarized here
  - api/handlers.go: Serves these reports
*/
package schedule

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SUPERVISOR REPORT
// =============================================================================

// SupervisorReport summarizes one supervisor's slice of the schedule.
type SupervisorReport struct {
	Supervisor    string
	Collaborators int // schedule rows under this supervisor
	Origins       int // distinct non-empty origin cities
	Destinations  int // distinct non-empty destination cities
}

// SupervisorReports aggregates records per supervisor, sorted by name.
// Records without a supervisor are excluded from the grouping.
func SupervisorReports(records []LeaveRecord) []SupervisorReport {
	type acc struct {
		rows         int
		origins      map[string]struct{}
		destinations map[string]struct{}
	}
	byName := make(map[string]*acc)

	for _, r := range records {
		if r.Supervisor == "" {
			continue
		}
		a := byName[r.Supervisor]
		if a == nil {
			a = &acc{origins: make(map[string]struct{}), destinations: make(map[string]struct{})}
			byName[r.Supervisor] = a
		}
		a.rows++
		if r.Origin != "" {
			a.origins[r.Origin] = struct{}{}
		}
		if r.Destination != "" {
			a.destinations[r.Destination] = struct{}{}
		}
	}

	out := make([]SupervisorReport, 0, len(byName))
	for name, a := range byName {
		out = append(out, SupervisorReport{
			Supervisor:    name,
			Collaborators: a.rows,
			Origins:       len(a.origins),
			Destinations:  len(a.destinations),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Supervisor < out[j].Supervisor })
	return out
}

// =============================================================================
// CITY FREQUENCIES
// =============================================================================

// CityFrequency is one city with its occurrence count.
type CityFrequency struct {
	City  string
	Count int
}

// TopOrigins returns the n most frequent non-empty origin cities.
func TopOrigins(records []LeaveRecord, n int) []CityFrequency {
	return topCities(records, n, func(r LeaveRecord) string { return r.Origin })
}

// TopDestinations returns the n most frequent non-empty destination cities.
func TopDestinations(records []LeaveRecord, n int) []CityFrequency {
	return topCities(records, n, func(r LeaveRecord) string { return r.Destination })
}

func topCities(records []LeaveRecord, n int, pick func(LeaveRecord) string) []CityFrequency {
	counts := make(map[string]int)
	for _, r := range records {
		if city := pick(r); city != "" {
			counts[city]++
		}
	}

	out := make([]CityFrequency, 0, len(counts))
	for city, count := range counts {
		out = append(out, CityFrequency{City: city, Count: count})
	}
	// Count descending, then name ascending so ties are deterministic.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].City < out[j].City
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// =============================================================================
// AUDIT STATISTICS
// =============================================================================

// AuditStats summarizes an audit result for display.
type AuditStats struct {
	Total       int             // violations found
	Critical    int             // violations in the critical band
	MeanGapDays decimal.Decimal // mean interval across violations, 1 decimal
}

// Stats computes summary statistics for a set of violations.
func Stats(violations []Violation, policy GapPolicy) AuditStats {
	stats := AuditStats{Total: len(violations)}
	if len(violations) == 0 {
		return stats
	}

	sum := decimal.Zero
	for _, v := range violations {
		if policy.Severity(v.GapDays) == SeverityCritical {
			stats.Critical++
		}
		sum = sum.Add(decimal.NewFromInt(int64(v.GapDays)))
	}
	stats.MeanGapDays = sum.Div(decimal.NewFromInt(int64(len(violations)))).Round(1)
	return stats
}
