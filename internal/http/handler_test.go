package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go.ngs.io/ephem-api/internal/usecase"
)

func newTestRouter(cfg Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	uc := usecase.NewEphemerisUseCase(nil, nil, 2)
	return SetupRouter(uc, cfg)
}

func doGet(t *testing.T, router http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(Config{})
	w := doGet(t, router, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["status"] != "ok" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestGetBodies(t *testing.T) {
	router := newTestRouter(Config{})
	w := doGet(t, router, "/v1/bodies")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Bodies []usecase.BodyInfo `json:"bodies"`
		Count  int                `json:"count"`
	}
	decode(t, w, &body)
	if body.Count != 11 || len(body.Bodies) != 11 {
		t.Errorf("expected 11 bodies, got %d", body.Count)
	}
}

func TestGetPlaces_NoStore(t *testing.T) {
	router := newTestRouter(Config{})
	w := doGet(t, router, "/v1/places")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"count":0`) {
		t.Errorf("expected empty list, got %s", w.Body.String())
	}
}

func TestGetPositions(t *testing.T) {
	router := newTestRouter(Config{})

	tests := []struct {
		name string
		url  string
		code int
	}{
		{"all bodies", "/v1/positions?time=1965-02-01T11:46:00Z", http.StatusOK},
		{"filtered", "/v1/positions?time=1965-02-01T11:46:00Z&bodies=Sun,Moon&apparent=false&true_node=false", http.StatusOK},
		{"default time", "/v1/positions?bodies=Mars", http.StatusOK},
		{"bad time", "/v1/positions?time=yesterday", http.StatusBadRequest},
		{"bad flag", "/v1/positions?apparent=maybe", http.StatusBadRequest},
		{"unknown body", "/v1/positions?bodies=Vulcan", http.StatusBadRequest},
	}

	for _, tt := range tests {
		w := doGet(t, router, tt.url)
		if w.Code != tt.code {
			t.Errorf("%s: expected %d, got %d (%s)", tt.name, tt.code, w.Code, w.Body.String())
		}
	}

	w := doGet(t, router, "/v1/positions?time=1965-02-01T11:46:00Z&bodies=Sun,Moon&apparent=false")
	var resp usecase.PositionsResponse
	decode(t, w, &resp)
	if resp.Apparent || !resp.TrueNode {
		t.Errorf("flags not honoured: apparent=%v true_node=%v", resp.Apparent, resp.TrueNode)
	}
	if len(resp.Positions) != 2 || resp.Positions[0].Body != "Sun" {
		t.Errorf("unexpected positions %+v", resp.Positions)
	}
}

func TestGetChart(t *testing.T) {
	router := newTestRouter(Config{})

	w := doGet(t, router, "/v1/chart?time=1965-02-01T11:46:00Z&lat=55.75&lon=-37.583333&houses=Koch&orbs=devore&name=Test")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Name    string             `json:"name"`
		Houses  string             `json:"houses"`
		Planets []any              `json:"planets"`
		Cusps   [12]float64        `json:"cusps"`
		Points  map[string]float64 `json:"points"`
	}
	decode(t, w, &resp)
	if resp.Name != "Test" || resp.Houses != "Koch" || len(resp.Planets) != 11 {
		t.Errorf("unexpected chart %+v", resp)
	}
	if _, ok := resp.Points["ascendant"]; !ok {
		t.Error("missing ascendant")
	}

	tests := []struct {
		name string
		url  string
	}{
		{"bad latitude", "/v1/chart?lat=north&lon=0"},
		{"missing longitude", "/v1/chart?lat=10"},
		{"unknown houses", "/v1/chart?houses=Alcabitius"},
		{"polar placidus", "/v1/chart?lat=78.2&lon=-15.6"},
		{"place without store", "/v1/chart?place=Moscow"},
	}
	for _, tt := range tests {
		if w := doGet(t, router, tt.url); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d (%s)", tt.name, w.Code, w.Body.String())
		}
	}
}

func TestGetLunation(t *testing.T) {
	router := newTestRouter(Config{})

	w := doGet(t, router, "/v1/lunation?date=2019-08-21")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Date     string `json:"date"`
		Quarters []struct {
			Quarter string  `json:"quarter"`
			DJD     float64 `json:"djd"`
			Time    string  `json:"time"`
		} `json:"quarters"`
	}
	decode(t, w, &resp)
	if resp.Date != "2019-08-21" {
		t.Errorf("expected date 2019-08-21, got %s", resp.Date)
	}
	if len(resp.Quarters) != 4 || resp.Quarters[0].Quarter != "New Moon" {
		t.Fatalf("unexpected quarters %+v", resp.Quarters)
	}
	if !strings.HasPrefix(resp.Quarters[0].Time, "2019-08-30") {
		t.Errorf("New Moon should fall on 2019-08-30, got %s", resp.Quarters[0].Time)
	}

	if w := doGet(t, router, "/v1/lunation?date=21.08.2019"); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed date, got %d", w.Code)
	}
}

func TestGetSeries(t *testing.T) {
	router := newTestRouter(Config{})

	w := doGet(t, router, "/v1/series?start=2020-01-01T00:00:00Z&end=2020-01-05T00:00:00Z&step=24h&bodies=Sun,Mars")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp usecase.BatchResponse
	decode(t, w, &resp)
	if len(resp.Points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(resp.Points))
	}
	if _, ok := resp.Points[4].Values["Mars"]; !ok {
		t.Error("missing Mars value")
	}

	tests := []struct {
		name string
		url  string
	}{
		{"missing start", "/v1/series?end=2020-01-05T00:00:00Z"},
		{"missing end", "/v1/series?start=2020-01-05T00:00:00Z"},
		{"bad step", "/v1/series?start=2020-01-01T00:00:00Z&end=2020-01-05T00:00:00Z&step=daily"},
		{"too many points", "/v1/series?start=1900-01-01T00:00:00Z&end=2020-01-05T00:00:00Z&step=1h"},
	}
	for _, tt := range tests {
		if w := doGet(t, router, tt.url); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, w.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(Config{})
	doGet(t, router, "/v1/bodies")

	w := doGet(t, router, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ephem_http_requests_total") {
		t.Error("missing ephem_http_requests_total")
	}
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(Config{RateLimitRPM: 1})

	if w := doGet(t, router, "/v1/bodies"); w.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", w.Code)
	}
	if w := doGet(t, router, "/v1/bodies"); w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: expected 429, got %d", w.Code)
	}
	// Health checks are not limited.
	if w := doGet(t, router, "/health"); w.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", w.Code)
	}
}

func TestIPRateLimiter_PerIP(t *testing.T) {
	l := NewIPRateLimiter(60)
	a := l.GetLimiter("10.0.0.1")
	if l.GetLimiter("10.0.0.1") != a {
		t.Error("expected the same limiter for the same IP")
	}
	if l.GetLimiter("10.0.0.2") == a {
		t.Error("expected distinct limiters for distinct IPs")
	}
	if a.Burst() != 6 {
		t.Errorf("expected burst 6, got %d", a.Burst())
	}
}

func TestIPRateLimiter_EvictsIdle(t *testing.T) {
	l := NewIPRateLimiter(60)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	a := l.GetLimiter("10.0.0.1")
	l.GetLimiter("10.0.0.2")
	now = now.Add(5 * time.Minute)
	l.GetLimiter("10.0.0.3")
	if got := l.Len(); got != 3 {
		t.Fatalf("expected 3 tracked IPs, got %d", got)
	}

	now = now.Add(6 * time.Minute)
	l.GetLimiter("10.0.0.3")
	if got := l.Len(); got != 1 {
		t.Errorf("expected idle IPs to be dropped, %d tracked", got)
	}
	if l.GetLimiter("10.0.0.1") == a {
		t.Error("expected a fresh limiter after eviction")
	}
	if got := l.Len(); got != 2 {
		t.Errorf("expected 2 tracked IPs, got %d", got)
	}
}

func TestStreamPositions(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(Config{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/stream?bodies=Sun,Moon&interval=20ms"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	var last string
	for i := 0; i < 3; i++ {
		var frame usecase.PositionsResponse
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if len(frame.Positions) != 2 || frame.Positions[0].Body != "Sun" {
			t.Errorf("frame %d: unexpected positions %+v", i, frame.Positions)
		}
		if frame.Time < last {
			t.Errorf("frame %d: time went backwards", i)
		}
		last = frame.Time
	}
}

func TestStreamPositions_BadRequest(t *testing.T) {
	router := newTestRouter(Config{})

	for _, url := range []string{
		"/v1/stream?bodies=Vulcan",
		"/v1/stream?interval=1ns",
		"/v1/stream?interval=soon",
	} {
		if w := doGet(t, router, url); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", url, w.Code)
		}
	}
}
