package http

import (
	"encoding/json"
	"errors"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/dataset"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/realtime"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/service"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

type fakeHistory struct {
	err  error
	snap *domain.EnhancedRealtimeData
}

func (f fakeHistory) LatestSnapshot() (*domain.EnhancedRealtimeData, error) {
	return f.snap, f.err
}

func (f fakeHistory) RecentPredictions(limit int) ([]domain.AIPrediction, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.AIPrediction, limit)
	return out, nil
}

func newApp(t *testing.T, history History) (*fiber.App, *realtime.Feed) {
	t.Helper()
	nop := zerolog.Nop()
	o := realtime.DefaultOptions()
	o.Seed = 3
	o.Logger = &nop
	feed := realtime.New(o)
	app := fiber.New()
	Register(app, Deps{Catalog: dataset.Default(), Feed: feed, Rand: sim.NewLocked(sim.NewRand(1)), History: history})
	return app, feed
}

func do(t *testing.T, app *fiber.App, method, path string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, body, err)
		}
	}
	return resp.StatusCode
}

func TestSiteRoutes(t *testing.T) {
	app, _ := newApp(t, nil)

	var sites []domain.ConstructionSite
	if code := do(t, app, "GET", "/sites", &sites); code != 200 || len(sites) != 8 {
		t.Fatalf("code=%d sites=%d", code, len(sites))
	}
	var stats domain.SiteStatistics
	if code := do(t, app, "GET", "/sites/stats", &stats); code != 200 || stats.TotalSites != 8 {
		t.Fatalf("code=%d stats=%+v", code, stats)
	}
	var area []domain.ConstructionSite
	if code := do(t, app, "GET", "/sites/area/Jolshiri", &area); code != 200 || len(area) != 4 {
		t.Fatalf("code=%d area=%d", code, len(area))
	}
	var site domain.ConstructionSite
	if code := do(t, app, "GET", "/sites/bash-tower-a", &site); code != 200 || site.Workers != 487 {
		t.Fatalf("code=%d site=%+v", code, site)
	}
	if code := do(t, app, "GET", "/sites/bash-tower-a/realtime", &site); code != 200 || site.ID != "bash-tower-a" {
		t.Fatalf("code=%d site=%+v", code, site)
	}
	var e map[string]string
	if code := do(t, app, "GET", "/sites/nope", &e); code != 404 || e["error"] == "" {
		t.Fatalf("code=%d body=%v", code, e)
	}
}

func TestFeedRoutes(t *testing.T) {
	app, feed := newApp(t, nil)

	var e map[string]string
	if code := do(t, app, "GET", "/snapshot", &e); code != 503 {
		t.Fatalf("snapshot before refresh code=%d", code)
	}
	var status map[string]any
	if code := do(t, app, "POST", "/refresh", &status); code != 200 {
		t.Fatalf("refresh code=%d", code)
	}
	var snap domain.EnhancedRealtimeData
	if code := do(t, app, "GET", "/snapshot", &snap); code != 200 || snap.Sites.TotalSites != 8 {
		t.Fatalf("code=%d total_sites=%d", code, snap.Sites.TotalSites)
	}
	var txs []domain.FinancialTransaction
	if code := do(t, app, "GET", "/events/financial", &txs); code != 200 || len(txs) != 3 {
		t.Fatalf("code=%d txs=%d", code, len(txs))
	}
	if code := do(t, app, "GET", "/events/gossip", &e); code != 404 {
		t.Fatalf("unknown kind code=%d", code)
	}
	var ps []domain.AIPrediction
	if code := do(t, app, "GET", "/predictions", &ps); code != 200 || len(ps) != len(feed.State().Predictions) {
		t.Fatalf("code=%d predictions=%d", code, len(ps))
	}
	var models struct {
		Models         []domain.MLModel `json:"models"`
		SystemAccuracy float64          `json:"system_accuracy"`
	}
	if code := do(t, app, "GET", "/models", &models); code != 200 || len(models.Models) != 7 || models.SystemAccuracy != 88.0 {
		t.Fatalf("code=%d models=%+v", code, models)
	}
	if code := do(t, app, "GET", "/status", &status); code != 200 || status["is_connected"] != true {
		t.Fatalf("code=%d status=%v", code, status)
	}

	feed.Stop()
	if code := do(t, app, "POST", "/refresh", &e); code != 409 {
		t.Fatalf("refresh after stop code=%d", code)
	}
}

func TestHistoryAndAlertsDisabled(t *testing.T) {
	app, _ := newApp(t, nil)
	var e map[string]string
	if code := do(t, app, "GET", "/history/predictions", &e); code != 503 {
		t.Fatalf("history code=%d", code)
	}
	if code := do(t, app, "POST", "/alerts/alert-1/ack", &e); code != 503 {
		t.Fatalf("ack code=%d", code)
	}
	if code := do(t, app, "GET", "/history/snapshot/latest", &e); code != 503 {
		t.Fatalf("latest code=%d", code)
	}
	if code := do(t, app, "GET", "/archive/snapshots", &e); code != 503 {
		t.Fatalf("archive code=%d", code)
	}
}

func TestLatestSnapshotRoute(t *testing.T) {
	app, _ := newApp(t, fakeHistory{})
	var e map[string]string
	if code := do(t, app, "GET", "/history/snapshot/latest", &e); code != 404 {
		t.Fatalf("empty history code=%d", code)
	}
	at := time.Date(2025, time.July, 3, 9, 0, 0, 0, time.UTC)
	app, _ = newApp(t, fakeHistory{snap: &domain.EnhancedRealtimeData{Timestamp: at}})
	var snap domain.EnhancedRealtimeData
	if code := do(t, app, "GET", "/history/snapshot/latest", &snap); code != 200 || !snap.Timestamp.Equal(at) {
		t.Fatalf("code=%d ts=%v", code, snap.Timestamp)
	}
}

type memObjects map[string][]byte

func (m memObjects) PutObject(_ context.Context, key string, data []byte, _ string) error {
	m[key] = data
	return nil
}

func (m memObjects) GetObject(_ context.Context, key string) ([]byte, error) {
	return m[key], nil
}

func (m memObjects) ListKeys(_ context.Context, prefix string) ([]string, error) {
	var out []string
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (m memObjects) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.example/" + key, nil
}

func TestArchiveRoutes(t *testing.T) {
	archive := service.NewArchiver(memObjects{}, "cc")
	at := time.Date(2025, time.July, 3, 9, 0, 0, 0, time.UTC)
	if _, err := archive.Snapshot(context.Background(), &domain.EnhancedRealtimeData{Timestamp: at}); err != nil {
		t.Fatal(err)
	}
	app := fiber.New()
	Register(app, Deps{Catalog: dataset.Default(), Archive: archive})

	var list []service.ArchivedObject
	if code := do(t, app, "GET", "/archive/snapshots?date=2025-07-03", &list); code != 200 || len(list) != 1 {
		t.Fatalf("code=%d list=%v", code, list)
	}
	if list[0].URL != "https://bucket.example/cc/snapshots/2025/07/03/090000.json" {
		t.Fatalf("url=%q", list[0].URL)
	}
	var snap domain.EnhancedRealtimeData
	if code := do(t, app, "GET", "/archive/snapshots/latest?date=2025-07-03", &snap); code != 200 || !snap.Timestamp.Equal(at) {
		t.Fatalf("code=%d ts=%v", code, snap.Timestamp)
	}

	var e map[string]string
	for path, want := range map[string]int{
		"/archive/reports?date=2025-07-03":          404,
		"/archive/snapshots?date=July":              400,
		"/archive/snapshots/latest?date=2025-07-04": 404,
	} {
		if code := do(t, app, "GET", path, &e); code != want {
			t.Fatalf("%s code=%d want %d", path, code, want)
		}
	}
}

func TestHistoryRoute(t *testing.T) {
	app, _ := newApp(t, fakeHistory{})
	var ps []domain.AIPrediction
	if code := do(t, app, "GET", "/history/predictions?limit=4", &ps); code != 200 || len(ps) != 4 {
		t.Fatalf("code=%d len=%d", code, len(ps))
	}
	app, _ = newApp(t, fakeHistory{err: errors.New("db down")})
	var e map[string]string
	if code := do(t, app, "GET", "/history/predictions", &e); code != 500 || e["error"] != "db down" {
		t.Fatalf("code=%d body=%v", code, e)
	}
}
