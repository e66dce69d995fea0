/*
handlers.go - HTTP API handlers for the schedule analysis service

PURPOSE:
  Exposes the analysis engine via REST. Handles HTTP request/response,
  JSON serialization, and delegates all computation to the schedule
  package.

ENDPOINTS:
  GET  /api/health                 Liveness check
  GET  /api/status                 Status buckets as of ?date= (default today)
  GET  /api/audit                  Minimum-gap violations (?min_gap= override)
  GET  /api/reports/supervisors    Per-supervisor aggregates
  GET  /api/reports/cities         Top origin/destination cities (?limit=)
  GET  /api/export                 Normalized dataset as CSV download
  GET  /api/cities                 Gazetteer entries for map renderers
  GET  /api/runs                   Archived analysis runs
  GET  /api/runs/{id}/violations   Violations of an archived run
  POST /api/refresh                Re-fetch, recompute, archive a run

DATASET CACHING:
  The provider is hit at most once per CacheTTL (default 5 minutes);
  POST /api/refresh bypasses the cache. Each computation operates on the
  normalized snapshot, never on shared mutable state.

FILTERS:
  /api/status and /api/export accept ?supervisor= and ?employee= to
  narrow the dataset, matching the filters of the map page.

ERROR HANDLING:
  - 400: invalid query parameters
  - 502: provider fetch failed or dataset structurally invalid
  - 500: archive failures

SEE ALSO:
  - dto.go:    Response shapes
  - server.go: Router and middleware
*/
package api

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Pedreb/cronogramadefolgas/gazetteer"
	"github.com/Pedreb/cronogramadefolgas/schedule"
	"github.com/Pedreb/cronogramadefolgas/source"
	"github.com/Pedreb/cronogramadefolgas/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Provider  source.Provider
	Gazetteer *gazetteer.Gazetteer
	Archive   *sqlite.Store // nil disables run archiving
	Policy    schedule.GapPolicy
	CacheTTL  time.Duration

	mu        sync.RWMutex
	records   []schedule.LeaveRecord
	fetchedAt time.Time
}

// NewHandler creates a handler with the default 5-minute dataset cache.
func NewHandler(provider source.Provider, gaz *gazetteer.Gazetteer, archive *sqlite.Store, policy schedule.GapPolicy) *Handler {
	return &Handler{
		Provider:  provider,
		Gazetteer: gaz,
		Archive:   archive,
		Policy:    policy,
		CacheTTL:  5 * time.Minute,
	}
}

// loadRecords returns the current normalized snapshot, fetching from the
// provider when the cache is stale or force is set.
func (h *Handler) loadRecords(ctx context.Context, force bool) ([]schedule.LeaveRecord, error) {
	h.mu.RLock()
	if !force && h.records != nil && time.Since(h.fetchedAt) < h.CacheTTL {
		records := h.records
		h.mu.RUnlock()
		return records, nil
	}
	h.mu.RUnlock()

	h.mu.Lock()
	defer h.mu.Unlock()

	if !force && h.records != nil && time.Since(h.fetchedAt) < h.CacheTTL {
		return h.records, nil
	}

	ds, err := h.Provider.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	records, err := schedule.Normalize(ds, h.Gazetteer)
	if err != nil {
		return nil, err
	}

	h.records = records
	h.fetchedAt = time.Now()
	return records, nil
}

// =============================================================================
// HEALTH
// =============================================================================

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// STATUS
// =============================================================================

// GetStatus classifies the schedule against a reference date. The engine
// takes the date explicitly; "today" is resolved here at the boundary.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ref := schedule.Today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed := schedule.ParseDate(raw)
		if parsed.IsZero() {
			writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", nil)
			return
		}
		ref = parsed
	}

	records, err := h.loadRecords(r.Context(), false)
	if err != nil {
		writeLoadError(w, err)
		return
	}
	records = filterRecords(records, r)

	report := schedule.Classify(records, ref)
	writeJSON(w, http.StatusOK, toStatusResponse(report, ref))
}

// =============================================================================
// AUDIT
// =============================================================================

// GetAudit runs the minimum-gap audit. ?min_gap= overrides the configured
// threshold for ad-hoc queries; severity bands stay as configured.
func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	policy := h.Policy
	if raw := r.URL.Query().Get("min_gap"); raw != "" {
		minGap, err := strconv.Atoi(raw)
		if err != nil || minGap < 0 {
			writeError(w, http.StatusBadRequest, "Invalid min_gap", err)
			return
		}
		policy.MinGapDays = minGap
	}

	records, err := h.loadRecords(r.Context(), false)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	violations := schedule.Audit(records, policy)
	writeJSON(w, http.StatusOK, toAuditResponse(violations, policy))
}

// =============================================================================
// REPORTS
// =============================================================================

func (h *Handler) GetSupervisorReports(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadRecords(r.Context(), false)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	reports := schedule.SupervisorReports(records)
	dtos := make([]SupervisorReportDTO, len(reports))
	for i, rep := range reports {
		dtos[i] = SupervisorReportDTO{
			Supervisor:    rep.Supervisor,
			Collaborators: rep.Collaborators,
			Origins:       rep.Origins,
			Destinations:  rep.Destinations,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetCityReports(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	records, err := h.loadRecords(r.Context(), false)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CityReportResponse{
		Origins:      toCityFrequencyDTOs(schedule.TopOrigins(records, limit)),
		Destinations: toCityFrequencyDTOs(schedule.TopDestinations(records, limit)),
	})
}

func toCityFrequencyDTOs(freqs []schedule.CityFrequency) []CityFrequencyDTO {
	out := make([]CityFrequencyDTO, len(freqs))
	for i, f := range freqs {
		out[i] = CityFrequencyDTO{City: f.City, Count: f.Count}
	}
	return out
}

// =============================================================================
// EXPORT
// =============================================================================

// ExportCSV streams the normalized dataset as a CSV download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadRecords(r.Context(), false)
	if err != nil {
		writeLoadError(w, err)
		return
	}
	records = filterRecords(records, r)

	filename := fmt.Sprintf("cronograma_equipes_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"COLABORADOR", "INICIO", "TERMINO", "BASE/CAMPO", "ORIGEM", "DESTINO", "SUPERVISOR", "MÊS"})
	for _, rec := range records {
		cw.Write([]string{
			rec.Employee,
			rec.Start.FormatBR(),
			rec.End.FormatBR(),
			rec.ReturnDate.FormatBR(),
			rec.Origin,
			rec.Destination,
			rec.Supervisor,
			rec.Month,
		})
	}
	cw.Flush()
}

// =============================================================================
// GAZETTEER
// =============================================================================

func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toPlaceDTOs(h.Gazetteer.Places()))
}

// =============================================================================
// ARCHIVE
// =============================================================================

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		writeError(w, http.StatusNotFound, "Run archive disabled", nil)
		return
	}

	runs, err := h.Archive.ListRuns(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toRunDTO(run)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetRunViolations(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		writeError(w, http.StatusNotFound, "Run archive disabled", nil)
		return
	}

	runID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid run id", err)
		return
	}

	violations, err := h.Archive.GetRunViolations(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get violations", err)
		return
	}

	dtos := make([]ViolationDTO, len(violations))
	for i, v := range violations {
		dtos[i] = ViolationDTO{
			Employee:      v.Employee,
			Folga1Termino: v.PriorEnd.FormatBR(),
			Folga2Inicio:  v.NextStart.FormatBR(),
			DiasIntervalo: v.GapDays,
			Severity:      string(v.Severity),
			Supervisor:    v.Supervisor,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Refresh forces a provider fetch, recomputes the audit, and archives the
// run when the archive is enabled.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadRecords(r.Context(), true)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	ref := schedule.Today()
	violations := schedule.Audit(records, h.Policy)
	stats := schedule.Stats(violations, h.Policy)

	run := sqlite.Run{
		ReferenceDate:  ref,
		RecordCount:    len(records),
		EmployeeCount:  countEmployees(records),
		ViolationCount: stats.Total,
		CriticalCount:  stats.Critical,
	}

	if h.Archive != nil {
		runID, err := h.Archive.SaveRun(r.Context(), run, violations, h.Policy)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to archive run", err)
			return
		}
		run.ID = runID
	} else {
		logrus.Debug("run archive disabled; refresh result not persisted")
	}
	run.CreatedAt = time.Now()

	writeJSON(w, http.StatusOK, toRunDTO(run))
}

// =============================================================================
// HELPERS
// =============================================================================

func countEmployees(records []schedule.LeaveRecord) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.Employee] = struct{}{}
	}
	return len(seen)
}

// filterRecords applies the ?supervisor= and ?employee= query filters.
func filterRecords(records []schedule.LeaveRecord, r *http.Request) []schedule.LeaveRecord {
	supervisor := r.URL.Query().Get("supervisor")
	employee := r.URL.Query().Get("employee")
	if supervisor == "" && employee == "" {
		return records
	}

	out := make([]schedule.LeaveRecord, 0, len(records))
	for _, rec := range records {
		if supervisor != "" && rec.Supervisor != supervisor {
			continue
		}
		if employee != "" && rec.Employee != employee {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// writeLoadError maps dataset-loading failures: structurally invalid input
// and provider failures are upstream problems, not server bugs.
func writeLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, schedule.ErrEmptyDataset) || errors.Is(err, schedule.ErrNoEmployeeColumn) {
		writeError(w, http.StatusBadGateway, "Upstream dataset is invalid", err)
		return
	}
	writeError(w, http.StatusBadGateway, "Failed to load dataset", err)
}
