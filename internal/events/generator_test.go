package events

import (
	"strings"
	"testing"
	"time"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/dataset"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

var fixedNow = time.Date(2025, time.August, 12, 10, 30, 0, 0, time.UTC)

func newTestGenerator() *Generator {
	return NewGenerator(dataset.Default(), nil, func() time.Time { return fixedNow })
}

func TestBatchesHaveExactSize(t *testing.T) {
	g := newTestGenerator()
	r := sim.NewRand(3)
	for _, n := range []int{-1, 0, 1, 3, 12} {
		want := max(n, 0)
		if got := len(g.SupplyChainEvents(r, n)); got != want {
			t.Fatalf("supply n=%d got %d", n, got)
		}
		if got := len(g.FinancialTransactions(r, n)); got != want {
			t.Fatalf("financial n=%d got %d", n, got)
		}
		if got := len(g.WorkforceEvents(r, n)); got != want {
			t.Fatalf("workforce n=%d got %d", n, got)
		}
		if got := len(g.EquipmentTelemetry(r, n)); got != want {
			t.Fatalf("telemetry n=%d got %d", n, got)
		}
		if got := len(g.QualityControlIncidents(r, n)); got != want {
			t.Fatalf("quality n=%d got %d", n, got)
		}
	}
}

func TestIdsAreSequentialPerStream(t *testing.T) {
	g := newTestGenerator()
	r := sim.NewRand(8)
	first := g.SupplyChainEvents(r, 2)
	second := g.SupplyChainEvents(r, 1)
	ids := []string{first[0].ID, first[1].ID, second[0].ID}
	want := []string{"SC-000001", "SC-000002", "SC-000003"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids=%v want %v", ids, want)
		}
	}
	if id := g.QualityControlIncidents(r, 1)[0].ID; id != "QC-000001" {
		t.Fatalf("quality id=%q", id)
	}
	g.Counter().Reset()
	if id := g.SupplyChainEvents(r, 1)[0].ID; id != "SC-000001" {
		t.Fatalf("after reset id=%q", id)
	}
}

func TestSharedCounter(t *testing.T) {
	ids := &Counter{}
	a := NewGenerator(dataset.Default(), ids, nil)
	b := NewGenerator(dataset.Default(), ids, nil)
	r := sim.NewRand(1)
	a.WorkforceEvents(r, 1)
	if id := b.WorkforceEvents(r, 1)[0].ID; id != "WF-000002" {
		t.Fatalf("shared counter id=%q", id)
	}
}

func TestRecordsReferenceCatalogSites(t *testing.T) {
	c := dataset.Default()
	g := NewGenerator(c, nil, nil)
	r := sim.NewRand(11)
	for _, ev := range g.SupplyChainEvents(r, 50) {
		if _, ok := c.Site(ev.SiteID); !ok {
			t.Fatalf("unknown site %q", ev.SiteID)
		}
		if ev.Quantity <= 0 || ev.Description == "" {
			t.Fatalf("bad supply event %+v", ev)
		}
	}
	for _, tx := range g.FinancialTransactions(r, 50) {
		if tx.Amount <= 0 || tx.Currency != "BDT" {
			t.Fatalf("bad transaction %+v", tx)
		}
	}
}

func TestTelemetryAlerts(t *testing.T) {
	g := newTestGenerator()
	r := sim.NewRand(21)
	for _, eq := range g.EquipmentTelemetry(r, 200) {
		if eq.Alerts == nil {
			t.Fatal("alerts should be an empty slice, not nil")
		}
		if eq.FuelLevel < 15 && !contains(eq.Alerts, "low_fuel") {
			t.Fatalf("missing low_fuel on %+v", eq)
		}
		if eq.Status == "fault" && !contains(eq.Alerts, "fault_code") {
			t.Fatalf("missing fault_code on %+v", eq)
		}
		if eq.Status != "operating" && eq.Load != 0 {
			t.Fatalf("idle equipment reports load %v", eq.Load)
		}
		if !strings.HasPrefix(eq.EquipmentID, classPrefix[eq.Class]+"-") {
			t.Fatalf("equipment id %q does not match class %q", eq.EquipmentID, eq.Class)
		}
	}
}

func TestTelemetryServiceOutlook(t *testing.T) {
	g := newTestGenerator()
	risk := map[string]float64{}
	for _, eq := range g.EquipmentTelemetry(sim.NewRand(8), 200) {
		if eq.LastService.IsZero() || !eq.LastService.Before(eq.Timestamp) {
			t.Fatalf("last service %v not before %v", eq.LastService, eq.Timestamp)
		}
		if eq.NextService.IsZero() {
			t.Fatalf("missing next service on %s", eq.ID)
		}
		if due := !eq.NextService.After(eq.Timestamp); due != contains(eq.Alerts, "service_due") {
			t.Fatalf("due=%v alerts=%v next service %v at %v", due, eq.Alerts, eq.NextService, eq.Timestamp)
		}
		if eq.FailureRisk30d < 0 || eq.FailureRisk90d > 100 || eq.FailureRisk90d < eq.FailureRisk30d {
			t.Fatalf("failure risk 30d=%v 90d=%v", eq.FailureRisk30d, eq.FailureRisk90d)
		}
		// Risk depends only on the class failure rate.
		if prev, ok := risk[eq.Class]; ok && prev != eq.FailureRisk30d {
			t.Fatalf("%s risk %v != %v", eq.Class, eq.FailureRisk30d, prev)
		}
		risk[eq.Class] = eq.FailureRisk30d
	}
}

func TestBatchTimestampsNewestFirst(t *testing.T) {
	g := newTestGenerator()
	batch := g.QualityControlIncidents(sim.NewRand(2), 4)
	if !batch[0].Timestamp.Equal(fixedNow) {
		t.Fatalf("first timestamp=%v", batch[0].Timestamp)
	}
	for i := 1; i < len(batch); i++ {
		if !batch[i].Timestamp.Before(batch[i-1].Timestamp) {
			t.Fatalf("timestamps not descending at %d", i)
		}
	}
}

func TestEmptyCatalogFallsBackToPlaceholderSite(t *testing.T) {
	g := NewGenerator(dataset.NewCatalog(nil), nil, nil)
	ev := g.WorkforceEvents(sim.NewRand(1), 1)[0]
	if ev.SiteID != "unassigned" {
		t.Fatalf("site=%q", ev.SiteID)
	}
}

var classPrefix = map[string]string{"crane": "CRN", "excavator": "EXC", "mixer": "MIX", "truck": "TRK"}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
