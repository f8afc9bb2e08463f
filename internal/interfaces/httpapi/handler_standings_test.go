package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/datafoot/standings-engine/internal/domain/competition"
	"github.com/datafoot/standings-engine/internal/infrastructure/repository/memory"
	"github.com/datafoot/standings-engine/internal/platform/cache"
	"github.com/datafoot/standings-engine/internal/platform/logging"
	"github.com/datafoot/standings-engine/internal/usecase"
)

const testJobToken = "job-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	competitionRepo := memory.NewCompetitionRepository(memory.SeedCompetitions())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	penaltyRepo := memory.NewPenaltyRepository(memory.SeedPenalties())

	standingsService := usecase.NewStandingsService(competitionRepo, matchRepo, penaltyRepo, cache.NewStore(time.Minute))
	analysisService := usecase.NewAnalysisService(standingsService, matchRepo, competition.DefaultSpecialRules())
	refreshService := usecase.NewRefreshService(standingsService, matchRepo, penaltyRepo, nil, nil, 0)

	handler := NewHandler(standingsService, analysisService, refreshService, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), nil, testJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, header map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for key, value := range header {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return rec, envelope
}

func TestGetStandings_SeededCompetition(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet,
		"/v1/competitions/fra-national-2/standings?date=2025-09-30", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := envelope["data"].(map[string]any)
	if data == nil {
		t.Fatalf("missing data in response: %v", envelope)
	}
	if got, _ := data["policy"].(string); got != "HEAD_TO_HEAD" {
		t.Fatalf("unexpected policy %q", got)
	}

	pools, _ := data["pools"].([]any)
	if len(pools) != 1 {
		t.Fatalf("expected 1 pool, got %d", len(pools))
	}
	poolA, _ := pools[0].(map[string]any)
	rows, _ := poolA["rows"].([]any)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	leader, _ := rows[0].(map[string]any)
	if got, _ := leader["team_id"].(string); got != "fra-n2-avranches" {
		t.Fatalf("unexpected leader %q", got)
	}
	if got, _ := leader["points"].(float64); got != 7 {
		t.Fatalf("leader points=%v want=7", leader["points"])
	}

	// Saint-Malo's forfeit fine is effective before the cutoff: 1 raw point
	// minus 1 penalty point.
	last, _ := rows[3].(map[string]any)
	if got, _ := last["team_id"].(string); got != "fra-n2-stmalo" {
		t.Fatalf("unexpected last row %q", got)
	}
	if got, _ := last["points"].(float64); got != 0 {
		t.Fatalf("penalised points=%v want=0", last["points"])
	}
}

func TestGetStandings_MissingScope(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet,
		"/v1/competitions/fra-national-2/standings", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	errorObj, _ := envelope["error"].(map[string]any)
	if errorObj == nil {
		t.Fatalf("missing error in response: %v", envelope)
	}
	items, _ := errorObj["errors"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one error item, got %v", errorObj["errors"])
	}
	item, _ := items[0].(map[string]any)
	if got, _ := item["reason"].(string); got != "invalidScope" {
		t.Fatalf("unexpected reason %q", got)
	}
}

func TestGetStandings_UnknownCompetition(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodGet,
		"/v1/competitions/nope/standings?date=2025-09-30", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSimulateStandings_OverrideChangesTable(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"date": "2025-09-30",
		"overrides": [{"match_id": "n2-a-007", "home_goals": 1, "away_goals": 0}]
	}`
	rec, envelope := doRequest(t, router, http.MethodPost,
		"/v1/competitions/fra-national-2/standings/simulate", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := envelope["data"].(map[string]any)
	if simulated, _ := data["simulated"].(bool); !simulated {
		t.Fatalf("expected simulated flag in response")
	}

	pools, _ := data["pools"].([]any)
	poolA, _ := pools[0].(map[string]any)
	rows, _ := poolA["rows"].([]any)
	var vannesPoints float64
	for _, raw := range rows {
		row, _ := raw.(map[string]any)
		if row["team_id"] == "fra-n2-vannes" {
			vannesPoints, _ = row["points"].(float64)
		}
	}
	if vannesPoints != 6 {
		t.Fatalf("vannes points=%v want=6 after simulated win", vannesPoints)
	}
}

func TestSimulateStandings_UnknownOverride(t *testing.T) {
	router := newTestRouter(t)

	body := `{"date": "2025-09-30", "overrides": [{"match_id": "nope", "home_goals": 1, "away_goals": 0}]}`
	rec, _ := doRequest(t, router, http.MethodPost,
		"/v1/competitions/fra-national-2/standings/simulate", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetScheduleDifficulty_ReturnsDifficulty(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet,
		"/v1/competitions/fra-national-2/standings/difficulty?date=2025-09-30", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := envelope["data"].(map[string]any)
	pools, _ := data["pools"].([]any)
	poolA, _ := pools[0].(map[string]any)
	rows, _ := poolA["rows"].([]any)
	for _, raw := range rows {
		row, _ := raw.(map[string]any)
		if _, ok := row["difficulty"]; !ok {
			t.Fatalf("row %v is missing difficulty", row["team_id"])
		}
	}
}

func TestListModifiableMatches_OnlyUnplayed(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet,
		"/v1/competitions/fra-national-2/matches/modifiable?only_unplayed=true", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := envelope["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("expected the 2 scheduled fixtures, got %d", len(data))
	}
	for _, raw := range data {
		item, _ := raw.(map[string]any)
		if got, _ := item["status"].(string); got != "SCHEDULED" {
			t.Fatalf("unexpected status %q", got)
		}
	}
}

func TestRunRefreshJob_RequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/refresh", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/refresh",
		`{"competition_ids": ["fra-national-2"]}`,
		map[string]string{"X-Internal-Job-Token": testJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := envelope["data"].(map[string]any)
	if got, _ := data["success_count"].(float64); got != 1 {
		t.Fatalf("success_count=%v want=1", data["success_count"])
	}
}
