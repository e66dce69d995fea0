package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pedreb/cronogramadefolgas/api"
	"github.com/Pedreb/cronogramadefolgas/gazetteer"
	"github.com/Pedreb/cronogramadefolgas/schedule"
	"github.com/Pedreb/cronogramadefolgas/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// stubProvider serves a fixed dataset, counting fetches so cache behavior
// is observable.
type stubProvider struct {
	ds      schedule.Dataset
	err     error
	fetches int
}

func (s *stubProvider) Fetch(ctx context.Context) (schedule.Dataset, error) {
	s.fetches++
	return s.ds, s.err
}

func testDataset() schedule.Dataset {
	return schedule.Dataset{
		Columns: []string{"COLABORADOR", "INICIO", "TERMINO", "BASE/CAMPO", "ORIGEM", "DESTINO", "SUPERVISOR", "MÊS"},
		Rows: [][]string{
			{"Ana", "2024-01-01", "2024-01-10", "", "Belém", "Santarém", "Silva", "JANEIRO"},
			{"Ana", "2024-01-15", "2024-01-25", "", "Belém", "Marabá", "Silva", "JANEIRO"},
			{"Bruno", "2024-03-01", "2024-03-10", "", "Altamira", "Belém", "Souza", "MARÇO"},
			{"Carla", "", "", "", "", "", "Souza", ""},
		},
	}
}

func newTestServer(t *testing.T, provider *stubProvider) *httptest.Server {
	t.Helper()
	archive, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })

	h := api.NewHandler(provider, gazetteer.Para(), archive, schedule.DefaultGapPolicy())
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// =============================================================================
// STATUS ENDPOINT
// =============================================================================

func TestGetStatus_ClassifiesAgainstQueryDate(t *testing.T) {
	// GIVEN: Ana on leave Jan 1-10, reference date Jan 5
	// WHEN: GET /api/status?date=2024-01-05
	// THEN: Ana's first record on leave, second active, Carla unscheduled

	srv := newTestServer(t, &stubProvider{ds: testDataset()})

	var resp struct {
		ReferenceDate string `json:"reference_date"`
		OnLeave       []struct {
			Employee string `json:"employee"`
			Start    string `json:"start"`
			End      string `json:"end"`
		} `json:"on_leave"`
		Active      []json.RawMessage `json:"active"`
		Unscheduled []struct {
			Employee string `json:"employee"`
		} `json:"unscheduled"`
	}
	r := getJSON(t, srv.URL+"/api/status?date=2024-01-05", &resp)

	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.Equal(t, "05/01/2024", resp.ReferenceDate)
	require.Len(t, resp.OnLeave, 1)
	assert.Equal(t, "Ana", resp.OnLeave[0].Employee)
	assert.Equal(t, "01/01/2024", resp.OnLeave[0].Start)
	assert.Equal(t, "10/01/2024", resp.OnLeave[0].End)
	assert.Len(t, resp.Active, 2)
	require.Len(t, resp.Unscheduled, 1)
	assert.Equal(t, "Carla", resp.Unscheduled[0].Employee)
}

func TestGetStatus_InvalidDate_BadRequest(t *testing.T) {
	srv := newTestServer(t, &stubProvider{ds: testDataset()})

	r := getJSON(t, srv.URL+"/api/status?date=banana", nil)
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
}

func TestGetStatus_SupervisorFilter(t *testing.T) {
	// GIVEN: Records under two supervisors
	// WHEN: Filtering by supervisor=Souza
	// THEN: Only Souza's records are classified

	srv := newTestServer(t, &stubProvider{ds: testDataset()})

	var resp struct {
		OnLeave     []json.RawMessage `json:"on_leave"`
		Active      []json.RawMessage `json:"active"`
		Unscheduled []json.RawMessage `json:"unscheduled"`
	}
	getJSON(t, srv.URL+"/api/status?date=2024-03-05&supervisor=Souza", &resp)

	assert.Len(t, resp.OnLeave, 1)
	assert.Len(t, resp.Active, 0)
	assert.Len(t, resp.Unscheduled, 1)
}

// =============================================================================
// AUDIT ENDPOINT
// =============================================================================

func TestGetAudit_ReportsViolations(t *testing.T) {
	// GIVEN: Ana's two periods 5 days apart
	// WHEN: GET /api/audit
	// THEN: One critical violation with regional date formatting

	srv := newTestServer(t, &stubProvider{ds: testDataset()})

	var resp struct {
		MinGapDays int `json:"min_gap_days"`
		Violations []struct {
			Employee      string `json:"employee"`
			Folga1Termino string `json:"folga1_termino"`
			Folga2Inicio  string `json:"folga2_inicio"`
			DiasIntervalo int    `json:"dias_intervalo"`
			Severity      string `json:"severity"`
			Supervisor    string `json:"supervisor"`
		} `json:"violations"`
		Stats struct {
			Total       int    `json:"total"`
			Critical    int    `json:"critical"`
			MeanGapDays string `json:"mean_gap_days"`
		} `json:"stats"`
	}
	r := getJSON(t, srv.URL+"/api/audit", &resp)

	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.Equal(t, 30, resp.MinGapDays)
	require.Len(t, resp.Violations, 1)
	v := resp.Violations[0]
	assert.Equal(t, "Ana", v.Employee)
	assert.Equal(t, "10/01/2024", v.Folga1Termino)
	assert.Equal(t, "15/01/2024", v.Folga2Inicio)
	assert.Equal(t, 5, v.DiasIntervalo)
	assert.Equal(t, "critical", v.Severity)
	assert.Equal(t, "Silva", v.Supervisor)
	assert.Equal(t, 1, resp.Stats.Total)
	assert.Equal(t, 1, resp.Stats.Critical)
	assert.Equal(t, "5.0", resp.Stats.MeanGapDays)
}

func TestGetAudit_MinGapOverride(t *testing.T) {
	// With min_gap=3 the 5-day gap is compliant.
	srv := newTestServer(t, &stubProvider{ds: testDataset()})

	var resp struct {
		Violations []json.RawMessage `json:"violations"`
	}
	getJSON(t, srv.URL+"/api/audit?min_gap=3", &resp)
	assert.Empty(t, resp.Violations)
}

// =============================================================================
// REPORTS AND EXPORT
// =============================================================================

func TestGetSupervisorReports(t *testing.T) {
	srv := newTestServer(t, &stubProvider{ds: testDataset()})

	var resp []struct {
		Supervisor    string `json:"supervisor"`
		Collaborators int    `json:"collaborators"`
		Origins       int    `json:"origins"`
		Destinations  int    `json:"destinations"`
	}
	getJSON(t, srv.URL+"/api/reports/supervisors", &resp)

	require.Len(t, resp, 2)
	assert.Equal(t, "Silva", resp[0].Supervisor)
	assert.Equal(t, 2, resp[0].Collaborators)
	assert.Equal(t, 1, resp[0].Origins)
	assert.Equal(t, 2, resp[0].Destinations)
}

func TestGetCityReports(t *testing.T) {
	srv := newTestServer(t, &stubProvider{ds: testDataset()})

	var resp struct {
		Origins []struct {
			City  string `json:"city"`
			Count int    `json:"count"`
		} `json:"origins"`
	}
	getJSON(t, srv.URL+"/api/reports/cities", &resp)

	require.NotEmpty(t, resp.Origins)
	assert.Equal(t, "Belém", resp.Origins[0].City)
	assert.Equal(t, 2, resp.Origins[0].Count)
}

func TestExportCSV_DownloadsNormalizedDataset(t *testing.T) {
	srv := newTestServer(t, &stubProvider{ds: testDataset()})

	resp, err := http.Get(srv.URL + "/api/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "cronograma_equipes_")
}

// =============================================================================
// REFRESH AND ARCHIVE
// =============================================================================

func TestRefresh_ArchivesRun(t *testing.T) {
	// GIVEN: A dataset with one violation
	// WHEN: POST /api/refresh then GET /api/runs
	// THEN: The run is archived with its counters

	srv := newTestServer(t, &stubProvider{ds: testDataset()})

	resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var runs []struct {
		ID             int64 `json:"id"`
		RecordCount    int   `json:"record_count"`
		EmployeeCount  int   `json:"employee_count"`
		ViolationCount int   `json:"violation_count"`
		CriticalCount  int   `json:"critical_count"`
	}
	getJSON(t, srv.URL+"/api/runs", &runs)

	require.Len(t, runs, 1)
	assert.Equal(t, 4, runs[0].RecordCount)
	assert.Equal(t, 3, runs[0].EmployeeCount)
	assert.Equal(t, 1, runs[0].ViolationCount)
	assert.Equal(t, 1, runs[0].CriticalCount)

	var violations []struct {
		Employee string `json:"employee"`
		Severity string `json:"severity"`
	}
	getJSON(t, srv.URL+"/api/runs/1/violations", &violations)
	require.Len(t, violations, 1)
	assert.Equal(t, "Ana", violations[0].Employee)
	assert.Equal(t, "critical", violations[0].Severity)
}

// =============================================================================
// CACHING AND FAILURES
// =============================================================================

func TestDatasetCache_SingleFetchAcrossRequests(t *testing.T) {
	// Two reads within the TTL hit the provider once; refresh forces a re-fetch.
	provider := &stubProvider{ds: testDataset()}
	srv := newTestServer(t, provider)

	getJSON(t, srv.URL+"/api/status", nil)
	getJSON(t, srv.URL+"/api/audit", nil)
	assert.Equal(t, 1, provider.fetches)

	resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 2, provider.fetches)
}

func TestEmptyUpstreamDataset_BadGateway(t *testing.T) {
	// An empty fetch result must not masquerade as an empty-but-clean team.
	srv := newTestServer(t, &stubProvider{ds: schedule.Dataset{}})

	r := getJSON(t, srv.URL+"/api/status", nil)
	assert.Equal(t, http.StatusBadGateway, r.StatusCode)
}

func TestListCities_ServesGazetteer(t *testing.T) {
	srv := newTestServer(t, &stubProvider{ds: testDataset()})

	var cities []struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lon  float64 `json:"lon"`
	}
	getJSON(t, srv.URL+"/api/cities", &cities)
	assert.Len(t, cities, 27)
}
