package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rnwolfe/streakmap/internal/activity"
	"github.com/rnwolfe/streakmap/internal/report"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func fixedLoad(calls *int, got *report.Overrides) LoadFunc {
	return func(o report.Overrides) (*activity.Result, error) {
		*calls++
		if got != nil {
			*got = o
		}
		return &activity.Result{
			Heatmap:       []activity.DayCount{{Date: "2026-03-01", Value: 4}},
			LongestStreak: 3,
			CurrentStreak: 1,
			Total:         4,
			Today:         "2026-03-01",
		}, nil
	}
}

func get(t *testing.T, h http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	var calls int
	w := get(t, New(fixedLoad(&calls, nil), nil), "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if calls != 0 {
		t.Errorf("healthz should not load events, loaded %d times", calls)
	}
}

func TestHeatmap_RecomputesPerRequest(t *testing.T) {
	var calls int
	r := New(fixedLoad(&calls, nil), nil)

	for i := 0; i < 2; i++ {
		w := get(t, r, "/api/heatmap", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d body=%s", w.Code, w.Body)
		}
		var body struct {
			Heatmap []activity.DayCount `json:"heatmap_data"`
			Longest int                 `json:"longest_streak"`
			Current int                 `json:"current_streak"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(body.Heatmap) != 1 || body.Heatmap[0].Value != 4 {
			t.Errorf("heatmap_data = %v", body.Heatmap)
		}
		if body.Longest != 3 || body.Current != 1 {
			t.Errorf("streaks = %d,%d", body.Longest, body.Current)
		}
	}
	if calls != 2 {
		t.Errorf("load called %d times, want 2", calls)
	}
}

func TestHeatmap_QueryOverrides(t *testing.T) {
	var calls int
	var got report.Overrides
	r := New(fixedLoad(&calls, &got), nil)

	w := get(t, r, "/api/heatmap?rollover=0&count=all&fill=true&tz=UTC", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body)
	}
	if got.Rollover == nil || *got.Rollover != 0 {
		t.Errorf("rollover override = %v", got.Rollover)
	}
	if got.Mode == nil || *got.Mode != activity.CountAll {
		t.Errorf("mode override = %v", got.Mode)
	}
	if got.Fill == nil || !*got.Fill {
		t.Errorf("fill override = %v", got.Fill)
	}
	if got.Timezone != "UTC" {
		t.Errorf("tz override = %q", got.Timezone)
	}
}

func TestHeatmap_BadQuery(t *testing.T) {
	var calls int
	r := New(fixedLoad(&calls, nil), nil)

	for _, q := range []string{"rollover=24", "rollover=x", "count=most", "fill=perhaps", "tz=Not/AZone"} {
		w := get(t, r, "/api/heatmap?"+q, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, w.Code)
		}
	}
	if calls != 0 {
		t.Errorf("bad queries should not load, loaded %d times", calls)
	}
}

func TestHeatmap_LoadErrors(t *testing.T) {
	invalid := func(report.Overrides) (*activity.Result, error) {
		return nil, fmt.Errorf("aggregating events: %w", activity.ErrInvalidInput)
	}
	if w := get(t, New(invalid, nil), "/api/heatmap", nil); w.Code != http.StatusBadRequest {
		t.Errorf("invalid input: status = %d, want 400", w.Code)
	}

	broken := func(report.Overrides) (*activity.Result, error) {
		return nil, errors.New("database is locked")
	}
	if w := get(t, New(broken, nil), "/api/heatmap", nil); w.Code != http.StatusInternalServerError {
		t.Errorf("load failure: status = %d, want 500", w.Code)
	}
}

func TestStreakEndpoint(t *testing.T) {
	var calls int
	w := get(t, New(fixedLoad(&calls, nil), nil), "/api/streak", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["longest_streak"] != float64(3) || body["current_streak"] != float64(1) {
		t.Errorf("body = %v", body)
	}
	if _, ok := body["heatmap_data"]; ok {
		t.Error("streak endpoint should not include heatmap_data")
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	var calls int
	r := New(fixedLoad(&calls, nil), []string{"http://localhost:3000"})

	w := get(t, r, "/api/heatmap", map[string]string{"Origin": "http://localhost:3000"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	w = get(t, r, "/api/heatmap", map[string]string{"Origin": "http://evil.example"})
	if w.Code != http.StatusForbidden {
		t.Errorf("disallowed origin: status = %d, want 403", w.Code)
	}
}
