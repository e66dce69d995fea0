/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  Defines the JSON structures returned to clients, decoupling the engine
  types from the API contract. Dates are serialized DD/MM/YYYY per the
  regional convention; absent dates render as "N/A".

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Response: Wrappers grouping several DTOs

SEE ALSO:
  - handlers.go: Uses these types
  - schedule:    Source of the engine types converted here
*/
package api

import (
	"time"

	"github.com/Pedreb/cronogramadefolgas/gazetteer"
	"github.com/Pedreb/cronogramadefolgas/schedule"
	"github.com/Pedreb/cronogramadefolgas/store/sqlite"
)

// =============================================================================
// STATUS
// =============================================================================

// OnLeaveDTO is a record whose leave window contains the reference date.
type OnLeaveDTO struct {
	Employee    string `json:"employee"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Supervisor  string `json:"supervisor"`
}

// ActiveDTO is a scheduled record outside its leave window.
type ActiveDTO struct {
	Employee   string `json:"employee"`
	Origin     string `json:"origin"`
	Supervisor string `json:"supervisor"`
}

// UnscheduledDTO is a record with no complete leave window.
type UnscheduledDTO struct {
	Employee   string `json:"employee"`
	Supervisor string `json:"supervisor"`
}

// StatusResponse carries the three classification buckets.
type StatusResponse struct {
	ReferenceDate string           `json:"reference_date"`
	OnLeave       []OnLeaveDTO     `json:"on_leave"`
	Active        []ActiveDTO      `json:"active"`
	Unscheduled   []UnscheduledDTO `json:"unscheduled"`
}

// =============================================================================
// AUDIT
// =============================================================================

// ViolationDTO is one minimum-gap violation.
type ViolationDTO struct {
	Employee      string `json:"employee"`
	Folga1Termino string `json:"folga1_termino"`
	Folga2Inicio  string `json:"folga2_inicio"`
	DiasIntervalo int    `json:"dias_intervalo"`
	Severity      string `json:"severity"`
	Supervisor    string `json:"supervisor"`
}

// AuditStatsDTO summarizes the audit result.
type AuditStatsDTO struct {
	Total       int    `json:"total"`
	Critical    int    `json:"critical"`
	MeanGapDays string `json:"mean_gap_days"`
}

// AuditResponse is the full audit payload.
type AuditResponse struct {
	MinGapDays int            `json:"min_gap_days"`
	Violations []ViolationDTO `json:"violations"`
	Stats      AuditStatsDTO  `json:"stats"`
}

// =============================================================================
// REPORTS
// =============================================================================

// SupervisorReportDTO mirrors schedule.SupervisorReport.
type SupervisorReportDTO struct {
	Supervisor    string `json:"supervisor"`
	Collaborators int    `json:"collaborators"`
	Origins       int    `json:"origins"`
	Destinations  int    `json:"destinations"`
}

// CityFrequencyDTO is one city with its occurrence count.
type CityFrequencyDTO struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// CityReportResponse carries the origin/destination frequency tables.
type CityReportResponse struct {
	Origins      []CityFrequencyDTO `json:"origins"`
	Destinations []CityFrequencyDTO `json:"destinations"`
}

// =============================================================================
// ARCHIVE
// =============================================================================

// RunDTO is one archived analysis run.
type RunDTO struct {
	ID             int64  `json:"id"`
	ReferenceDate  string `json:"reference_date"`
	RecordCount    int    `json:"record_count"`
	EmployeeCount  int    `json:"employee_count"`
	ViolationCount int    `json:"violation_count"`
	CriticalCount  int    `json:"critical_count"`
	CreatedAt      string `json:"created_at"`
}

// =============================================================================
// MISC
// =============================================================================

// PlaceDTO is one gazetteer entry for map renderers.
type PlaceDTO struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toStatusResponse(report schedule.StatusReport, ref schedule.Date) StatusResponse {
	resp := StatusResponse{
		ReferenceDate: ref.FormatBR(),
		OnLeave:       make([]OnLeaveDTO, 0, len(report.OnLeave)),
		Active:        make([]ActiveDTO, 0, len(report.Active)),
		Unscheduled:   make([]UnscheduledDTO, 0, len(report.Unscheduled)),
	}
	for _, e := range report.OnLeave {
		resp.OnLeave = append(resp.OnLeave, OnLeaveDTO{
			Employee:    e.Employee,
			Start:       e.Start.FormatBR(),
			End:         e.End.FormatBR(),
			Origin:      e.Origin,
			Destination: e.Destination,
			Supervisor:  e.Supervisor,
		})
	}
	for _, e := range report.Active {
		resp.Active = append(resp.Active, ActiveDTO{
			Employee:   e.Employee,
			Origin:     e.Origin,
			Supervisor: e.Supervisor,
		})
	}
	for _, e := range report.Unscheduled {
		resp.Unscheduled = append(resp.Unscheduled, UnscheduledDTO{
			Employee:   e.Employee,
			Supervisor: e.Supervisor,
		})
	}
	return resp
}

func toViolationDTO(v schedule.Violation, policy schedule.GapPolicy) ViolationDTO {
	return ViolationDTO{
		Employee:      v.Employee,
		Folga1Termino: v.PriorEnd.FormatBR(),
		Folga2Inicio:  v.NextStart.FormatBR(),
		DiasIntervalo: v.GapDays,
		Severity:      string(policy.Severity(v.GapDays)),
		Supervisor:    v.Supervisor,
	}
}

func toAuditResponse(violations []schedule.Violation, policy schedule.GapPolicy) AuditResponse {
	stats := schedule.Stats(violations, policy)
	resp := AuditResponse{
		MinGapDays: policy.MinGapDays,
		Violations: make([]ViolationDTO, 0, len(violations)),
		Stats: AuditStatsDTO{
			Total:       stats.Total,
			Critical:    stats.Critical,
			MeanGapDays: stats.MeanGapDays.StringFixed(1),
		},
	}
	for _, v := range violations {
		resp.Violations = append(resp.Violations, toViolationDTO(v, policy))
	}
	return resp
}

func toRunDTO(r sqlite.Run) RunDTO {
	return RunDTO{
		ID:             r.ID,
		ReferenceDate:  r.ReferenceDate.FormatBR(),
		RecordCount:    r.RecordCount,
		EmployeeCount:  r.EmployeeCount,
		ViolationCount: r.ViolationCount,
		CriticalCount:  r.CriticalCount,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
}

func toPlaceDTOs(places []gazetteer.Place) []PlaceDTO {
	out := make([]PlaceDTO, len(places))
	for i, p := range places {
		out[i] = PlaceDTO{Name: p.Name, Lat: p.Coords.Lat, Lon: p.Coords.Lon}
	}
	return out
}
