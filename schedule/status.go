/*
status.go - Current-status classification

PURPOSE:
  Partitions schedule records into three buckets relative to a reference
  date: currently on leave, currently active (working), and unscheduled
  (no leave window recorded).

CLASSIFICATION RULES:
  - Both dates present and start <= ref <= end (inclusive): on leave
  - Both dates present, ref outside the window:             active
  - Either date absent:                                     unscheduled

  Every record lands in exactly one bucket. Classification is per record,
  not per employee: someone with a past and a future leave period appears
  once in each.

PURITY:
  The reference date is an explicit parameter. The engine never reads the
  system clock; callers pass schedule.Today() at the boundary.

SEE ALSO:
  - audit.go: The other consumer of normalized records
*/
package schedule

// StatusEntry is one classified record. Fields irrelevant to the bucket
// (e.g. dates for unscheduled entries) are zero-valued.
type StatusEntry struct {
	Employee    string
	Start       Date
	End         Date
	Origin      string
	Destination string
	Supervisor  string
}

// StatusReport groups entries by bucket.
type StatusReport struct {
	OnLeave     []StatusEntry
	Active      []StatusEntry
	Unscheduled []StatusEntry
}

// Classify buckets every record relative to the reference date.
func Classify(records []LeaveRecord, ref Date) StatusReport {
	var report StatusReport

	for _, r := range records {
		switch {
		case !r.Complete():
			report.Unscheduled = append(report.Unscheduled, StatusEntry{
				Employee:   r.Employee,
				Supervisor: r.Supervisor,
			})

		case r.Start.BeforeOrEqual(ref) && ref.BeforeOrEqual(r.End):
			report.OnLeave = append(report.OnLeave, StatusEntry{
				Employee:    r.Employee,
				Start:       r.Start,
				End:         r.End,
				Origin:      r.Origin,
				Destination: r.Destination,
				Supervisor:  r.Supervisor,
			})

		default:
			report.Active = append(report.Active, StatusEntry{
				Employee:   r.Employee,
				Origin:     r.Origin,
				Supervisor: r.Supervisor,
			})
		}
	}

	return report
}
