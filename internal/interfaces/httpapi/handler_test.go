package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-assistant-api/external/espn"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/logging"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/metrics"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/resilience"
	"github.com/riskibarqy/draft-assistant-api/internal/usecase"
)

const testLeagueDocument = `{
  "id": 12345,
  "seasonId": 2025,
  "settings": {"name": "Test League", "size": 2, "scoringSettings": {"scoringType": 0}},
  "members": [{"id": "{A}", "displayName": "ann"}, {"id": "{B}", "displayName": "bob"}],
  "teams": [
    {"id": 1, "abbrev": "ALP", "name": "Alpha", "primaryOwner": "{A}", "record": {"overall": {"wins": 2, "losses": 1, "ties": 0}}},
    {"id": 2, "abbrev": "BET", "name": "Beta", "primaryOwner": "{B}", "record": {"overall": {"wins": 1, "losses": 2, "ties": 0}}}
  ],
  "draftDetail": {"drafted": false, "inProgress": false}
}`

const testPoolDocument = `{"players": [
  {"id": 10, "onTeamId": 0, "player": {"id": 10, "fullName": "Late Pick", "defaultPositionId": 2, "proTeamId": 1,
    "ownership": {"averageDraftPosition": 90.5, "percentOwned": 60}}},
  {"id": 11, "player": {"id": 11, "fullName": "First Pick", "defaultPositionId": 3, "proTeamId": 2,
    "ownership": {"averageDraftPosition": 1.2, "percentOwned": 99.9}}}
]}`

const testSeasonPlayersDocument = `[
  {"id": 11, "fullName": "First Pick Duplicate", "defaultPositionId": 3},
  {"id": 12, "fullName": "Waiver Flyer", "defaultPositionId": 4, "ownership": {"percentOwned": 12}}
]`

type fakeESPN struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newFakeESPN(t *testing.T, leagueStatus int) *fakeESPN {
	t.Helper()

	fake := &fakeESPN{}
	fake.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/players"):
			_, _ = w.Write([]byte(testSeasonPlayersDocument))
		case r.URL.Query().Get("view") == "kona_player_info":
			_, _ = w.Write([]byte(testPoolDocument))
		case leagueStatus != http.StatusOK:
			w.WriteHeader(leagueStatus)
			_, _ = w.Write([]byte(`{"messages":["nope"]}`))
		default:
			_, _ = w.Write([]byte(testLeagueDocument))
		}
	}))
	t.Cleanup(fake.server.Close)
	return fake
}

func newTestRouter(t *testing.T, upstream *fakeESPN) (http.Handler, *metrics.Registry) {
	t.Helper()

	logger := logging.NewNop()
	client := espn.NewClient(espn.ClientConfig{
		BaseURL:        upstream.server.URL,
		Timeout:        2 * time.Second,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
	reg := metrics.New()

	cfg := usecase.DefaultPlayerServiceConfig()
	cfg.CacheEnabled = false
	players := usecase.NewPlayerService(client, cfg, reg, logger)
	leagues := usecase.NewLeagueService(client, usecase.NewSession(), players, logger)

	router := NewRouter(NewHandler(leagues, players, logger), logger, RouterOptions{
		CORSAllowedOrigins: []string{"*"},
		Metrics:            reg.Handler(),
		RequestMetrics:     reg,
	})
	return router, reg
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := sonic.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
}

func TestReadsRequireConnectedLeague(t *testing.T) {
	t.Parallel()

	upstream := newFakeESPN(t, http.StatusOK)
	router, _ := newTestRouter(t, upstream)

	for _, path := range []string{"/api/players/2025", "/api/teams/2025", "/api/draft/2025"} {
		rec := doRequest(t, router, http.MethodGet, path, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}

		var body errorEnvelope
		decodeBody(t, rec, &body)
		if body.Success || body.Error.Reason != "notConnected" {
			t.Fatalf("%s: unexpected error body: %+v", path, body)
		}
	}

	if got := upstream.calls.Load(); got != 0 {
		t.Fatalf("expected no upstream calls before connect, got %d", got)
	}
}

func TestConnectThenRead(t *testing.T) {
	t.Parallel()

	upstream := newFakeESPN(t, http.StatusOK)
	router, _ := newTestRouter(t, upstream)

	rec := doRequest(t, router, http.MethodPost, "/api/league/connect", `{"leagueId":12345,"seasonId":2025}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("connect: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var connected struct {
		Success bool `json:"success"`
		League  struct {
			Name        string `json:"name"`
			Teams       int    `json:"teams"`
			ScoringType string `json:"scoringType"`
			LeagueID    int64  `json:"leagueId"`
			TeamData    []struct {
				Name  string `json:"name"`
				Owner string `json:"owner"`
			} `json:"teamData"`
		} `json:"league"`
	}
	decodeBody(t, rec, &connected)
	if !connected.Success || connected.League.Name != "Test League" || connected.League.Teams != 2 || connected.League.ScoringType != "Standard" {
		t.Fatalf("unexpected connect body: %+v", connected)
	}
	if len(connected.League.TeamData) != 2 || connected.League.TeamData[0].Owner != "ann" {
		t.Fatalf("unexpected team data: %+v", connected.League.TeamData)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/players/2025", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("players: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var players []struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Source string `json:"source"`
	}
	decodeBody(t, rec, &players)
	if len(players) != 3 {
		t.Fatalf("expected 3 merged players, got %+v", players)
	}
	if players[0].ID != 11 || players[0].Name != "First Pick" || players[0].Source != "primary" {
		t.Fatalf("expected primary record for id 11 to lead, got %+v", players[0])
	}
	if players[1].ID != 10 || players[2].ID != 12 {
		t.Fatalf("unexpected order: %+v", players)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/teams/2025", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("teams: expected 200, got %d", rec.Code)
	}
	var teams []struct {
		Name   string `json:"name"`
		Owner  string `json:"owner"`
		Record string `json:"record"`
	}
	decodeBody(t, rec, &teams)
	if len(teams) != 2 || teams[0].Record != "2-1-0" || teams[1].Owner != "bob" {
		t.Fatalf("unexpected teams: %+v", teams)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/draft/2025", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("draft: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"picks":[]`) {
		t.Fatalf("expected empty picks array, got %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/health", "")
	var health struct {
		Status    string `json:"status"`
		Connected bool   `json:"connected"`
		APIURL    string `json:"apiUrl"`
		League    struct {
			LeagueID int64  `json:"leagueId"`
			Name     string `json:"name"`
		} `json:"league"`
	}
	decodeBody(t, rec, &health)
	if health.Status != "ok" || !health.Connected || health.League.LeagueID != 12345 || health.League.Name != "Test League" {
		t.Fatalf("unexpected health: %+v", health)
	}
	if health.APIURL != upstream.server.URL {
		t.Fatalf("unexpected api url %q", health.APIURL)
	}

	rec = doRequest(t, router, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "draft_assistant_player_pool_strategy_total") {
		t.Fatalf("expected pool metrics in exposition, got %d", rec.Code)
	}
}

func TestConnectFailureMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", status: http.StatusNotFound, wantStatus: http.StatusNotFound, wantMsg: usecase.MessageLeagueNotFound},
		{name: "private league", status: http.StatusUnauthorized, wantStatus: http.StatusUnauthorized, wantMsg: usecase.MessageAccessDenied},
		{name: "forbidden", status: http.StatusForbidden, wantStatus: http.StatusUnauthorized, wantMsg: usecase.MessageAccessDenied},
		{name: "upstream down", status: http.StatusServiceUnavailable, wantStatus: http.StatusBadGateway, wantMsg: usecase.MessageUpstreamTrouble},
		{name: "other", status: http.StatusTeapot, wantStatus: http.StatusBadGateway, wantMsg: usecase.MessageConnectionFailed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, _ := newTestRouter(t, newFakeESPN(t, tc.status))
			rec := doRequest(t, router, http.MethodPost, "/api/league/connect", `{"leagueId":1,"seasonId":2025}`)
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d body=%s", tc.wantStatus, rec.Code, rec.Body.String())
			}

			var body errorEnvelope
			decodeBody(t, rec, &body)
			if body.Success || body.Message != tc.wantMsg {
				t.Fatalf("unexpected body: %+v", body)
			}

			rec = doRequest(t, router, http.MethodGet, "/api/health", "")
			if !strings.Contains(rec.Body.String(), `"connected":false`) {
				t.Fatalf("expected session to stay disconnected, got %s", rec.Body.String())
			}
		})
	}
}

func TestConnectRejectsBadPayload(t *testing.T) {
	t.Parallel()

	upstream := newFakeESPN(t, http.StatusOK)
	router, _ := newTestRouter(t, upstream)

	bodies := []string{
		`not json`,
		`{"leagueId":12345}`,
		`{"leagueId":12345,"seasonId":2025,"extra":true}`,
		`{"leagueId":12345,"seasonId":2025,"credential":{"espnS2":"abc"}}`,
	}
	for _, body := range bodies {
		rec := doRequest(t, router, http.MethodPost, "/api/league/connect", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
		var out errorEnvelope
		decodeBody(t, rec, &out)
		if out.Error.Reason != "invalidInput" {
			t.Fatalf("%s: unexpected reason %q", body, out.Error.Reason)
		}
	}
	if got := upstream.calls.Load(); got != 0 {
		t.Fatalf("expected no upstream calls for invalid payloads, got %d", got)
	}
}

func TestInvalidSeasonPath(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, newFakeESPN(t, http.StatusOK))
	rec := doRequest(t, router, http.MethodPost, "/api/league/connect", `{"leagueId":12345,"seasonId":2025}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("connect: expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/players/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric season, got %d", rec.Code)
	}
}

func TestHealthWhenDisconnected(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, newFakeESPN(t, http.StatusOK))
	rec := doRequest(t, router, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"league":null`) || !strings.Contains(rec.Body.String(), `"connected":false`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/players/2025", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body errorEnvelope
	decodeBody(t, rec, &body)
	if body.Error.Reason != "internalError" {
		t.Fatalf("unexpected reason %q", body.Error.Reason)
	}
}
