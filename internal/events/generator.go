// Package events produces batches of discrete supply-chain, financial,
// workforce, equipment and quality records from fixed template pools.
package events

import (
	"fmt"
	"math"
	"time"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/dataset"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

type material struct {
	name      string
	unit      string
	lo, hi    float64
	suppliers []string
}

var materials = []material{
	{name: "Cement", unit: "bags", lo: 200, hi: 1500, suppliers: []string{"Shah Cement", "Akij Cement", "Meghna Cement", "Seven Rings Cement"}},
	{name: "Steel Rebar", unit: "tonnes", lo: 5, hi: 60, suppliers: []string{"BSRM", "KSRM", "AKS Steel", "GPH Ispat"}},
	{name: "Bricks", unit: "thousand", lo: 10, hi: 120, suppliers: []string{"Auto Bricks Ltd", "Mirpur Brick Field", "Savar Bricks"}},
	{name: "Sand", unit: "cubic metres", lo: 20, hi: 300, suppliers: []string{"Sylhet Sand Traders", "Meghna Sand Supply"}},
	{name: "Ready-mix Concrete", unit: "cubic metres", lo: 15, hi: 180, suppliers: []string{"Mir Concrete", "Concord Ready Mix", "Abul Khair RMC"}},
}

var supplyTypes = []string{"delivery", "delivery", "order", "delay", "shortage", "quality_check"}

var supplyStatuses = map[string][]string{
	"delivery":      {"completed", "on_time", "on_time"},
	"order":         {"pending", "confirmed"},
	"delay":         {"delayed"},
	"shortage":      {"critical", "warning"},
	"quality_check": {"passed", "passed", "failed"},
}

var (
	txTypes      = []string{"payment", "invoice", "expense", "receipt"}
	txCategories = []string{"labor", "materials", "equipment", "overhead"}
	txStatuses   = []string{"completed", "completed", "completed", "pending", "flagged"}
)

var counterparties = map[string][]string{
	"labor":     {"Site Labour Payroll", "Dhaka Skilled Workers Cooperative", "Subcontractor Wages"},
	"materials": {"BSRM", "Shah Cement", "Akij Cement", "Mir Concrete"},
	"equipment": {"Navana Equipment Rentals", "Crane Hire BD", "Fuel - Padma Oil"},
	"overhead":  {"DESCO Electricity", "RAJUK Permit Fees", "Site Security Services", "Insurance - Green Delta"},
}

var txRanges = map[string][2]float64{
	"labor":     {150_000, 2_500_000},
	"materials": {300_000, 8_000_000},
	"equipment": {80_000, 1_500_000},
	"overhead":  {20_000, 600_000},
}

var (
	workforceTypes = []string{"check_in", "check_in", "check_out", "overtime", "training", "certification", "safety_violation", "injury"}
	trades         = []string{"Mason", "Rod Binder", "Carpenter", "Electrician", "Plumber", "Welder", "Crane Operator", "Helper", "Painter", "Site Engineer"}
	firstNames     = []string{"Rahim", "Karim", "Abdul", "Jamal", "Shafiq", "Nasir", "Rafiq", "Habib", "Mizan", "Sohel", "Rubel", "Alamgir"}
	lastNames      = []string{"Uddin", "Hossain", "Rahman", "Islam", "Ahmed", "Mia", "Sarkar", "Molla", "Sheikh", "Khan"}
)

type equipmentClass struct {
	class    string
	prefix   string
	temp     [2]float64
	failures float64 // per year
}

var equipmentClasses = []equipmentClass{
	{class: "crane", prefix: "CRN", temp: [2]float64{55, 85}, failures: 0.35},
	{class: "excavator", prefix: "EXC", temp: [2]float64{70, 95}, failures: 0.5},
	{class: "mixer", prefix: "MIX", temp: [2]float64{50, 80}, failures: 0.6},
	{class: "truck", prefix: "TRK", temp: [2]float64{65, 92}, failures: 0.45},
}

var equipmentStatuses = []string{"operating", "operating", "operating", "idle", "maintenance", "fault"}

var (
	qcCategories = []string{"structural", "electrical", "plumbing", "finishing", "materials"}
	qcSeverities = []string{"minor", "minor", "minor", "major", "major", "critical"}
	qcStatuses   = []string{"open", "investigating", "resolved"}
	inspectors   = []string{"Eng. Tanvir Ahmed", "Eng. Farzana Haque", "Eng. Mahmudul Hasan", "Eng. Nusrat Jahan", "Eng. Arif Chowdhury"}
)

var qcFindings = map[string][]string{
	"structural": {"Honeycombing in column concrete", "Rebar cover below specification", "Slab deflection beyond tolerance"},
	"electrical": {"Conduit routing deviates from drawings", "Missing earthing on distribution board"},
	"plumbing":   {"Pressure test failure on riser", "Incorrect slope on drainage line"},
	"finishing":  {"Plaster cracks on external wall", "Tile lippage exceeds 2mm"},
	"materials":  {"Cement batch failed cube test", "Brick water absorption above limit", "Rebar mill certificate missing"},
}

var qcCost = map[string][2]float64{
	"minor":    {5_000, 60_000},
	"major":    {60_000, 400_000},
	"critical": {400_000, 2_500_000},
}

// Generator is stateless apart from the caller-owned id counter.
type Generator struct {
	siteIDs []string
	ids     *Counter
	now     func() time.Time
}

// NewGenerator draws site ids from c. A nil counter gets a private one; a
// nil clock means time.Now.
func NewGenerator(c *dataset.Catalog, ids *Counter, now func() time.Time) *Generator {
	if ids == nil {
		ids = &Counter{}
	}
	if now == nil {
		now = time.Now
	}
	g := &Generator{ids: ids, now: now}
	for _, s := range c.Sites() {
		g.siteIDs = append(g.siteIDs, s.ID)
	}
	if len(g.siteIDs) == 0 {
		g.siteIDs = []string{"unassigned"}
	}
	return g
}

// Counter exposes the id counter so callers can reset it.
func (g *Generator) Counter() *Counter { return g.ids }

// stamp spreads a batch over the last few seconds, newest first.
func (g *Generator) stamp(i int) time.Time {
	return g.now().Add(-time.Duration(i) * time.Second)
}

func (g *Generator) SupplyChainEvents(r sim.Rand, n int) []domain.SupplyChainEvent {
	out := make([]domain.SupplyChainEvent, 0, max(n, 0))
	for i := 0; i < n; i++ {
		m := sim.Pick(r, materials)
		kind := sim.Pick(r, supplyTypes)
		qty := math.Round(sim.Between(r, m.lo, m.hi))
		supplier := sim.Pick(r, m.suppliers)
		site := sim.Pick(r, g.siteIDs)
		ev := domain.SupplyChainEvent{
			ID:        g.ids.Next("SC"),
			Timestamp: g.stamp(i),
			Type:      kind,
			Material:  m.name,
			Quantity:  qty,
			Unit:      m.unit,
			Supplier:  supplier,
			SiteID:    site,
			Status:    sim.Pick(r, supplyStatuses[kind]),
		}
		switch kind {
		case "delivery":
			ev.Description = fmt.Sprintf("%.0f %s of %s delivered by %s", qty, m.unit, m.name, supplier)
		case "order":
			ev.ETAHours = sim.IntBetween(r, 12, 96)
			ev.Description = fmt.Sprintf("Purchase order for %.0f %s of %s placed with %s", qty, m.unit, m.name, supplier)
		case "delay":
			ev.ETAHours = sim.IntBetween(r, 6, 72)
			ev.Description = fmt.Sprintf("%s shipment from %s delayed %dh (traffic on Dhaka-Chattogram highway)", m.name, supplier, ev.ETAHours)
		case "shortage":
			ev.Description = fmt.Sprintf("%s stock at %s below reorder point", m.name, site)
		case "quality_check":
			ev.Description = fmt.Sprintf("Incoming %s batch from %s inspected: %s", m.name, supplier, ev.Status)
		}
		out = append(out, ev)
	}
	return out
}

func (g *Generator) FinancialTransactions(r sim.Rand, n int) []domain.FinancialTransaction {
	out := make([]domain.FinancialTransaction, 0, max(n, 0))
	for i := 0; i < n; i++ {
		category := sim.Pick(r, txCategories)
		kind := sim.Pick(r, txTypes)
		rng := txRanges[category]
		amount := sim.Round2(sim.Between(r, rng[0], rng[1]))
		party := sim.Pick(r, counterparties[category])
		site := sim.Pick(r, g.siteIDs)
		out = append(out, domain.FinancialTransaction{
			ID:           g.ids.Next("FT"),
			Timestamp:    g.stamp(i),
			Type:         kind,
			Category:     category,
			Amount:       amount,
			Currency:     "BDT",
			SiteID:       site,
			Counterparty: party,
			Status:       sim.Pick(r, txStatuses),
			Description:  fmt.Sprintf("%s %s for %s (%s)", category, kind, site, party),
		})
	}
	return out
}

func (g *Generator) WorkforceEvents(r sim.Rand, n int) []domain.WorkforceEvent {
	out := make([]domain.WorkforceEvent, 0, max(n, 0))
	for i := 0; i < n; i++ {
		kind := sim.Pick(r, workforceTypes)
		name := sim.Pick(r, firstNames) + " " + sim.Pick(r, lastNames)
		trade := sim.Pick(r, trades)
		site := sim.Pick(r, g.siteIDs)
		ev := domain.WorkforceEvent{
			ID:         g.ids.Next("WF"),
			Timestamp:  g.stamp(i),
			Type:       kind,
			WorkerID:   fmt.Sprintf("W-%05d", sim.IntBetween(r, 1, 99999)),
			WorkerName: name,
			Trade:      trade,
			SiteID:     site,
			Severity:   "info",
		}
		switch kind {
		case "check_in":
			ev.Description = fmt.Sprintf("%s (%s) checked in at %s", name, trade, site)
		case "check_out":
			ev.Description = fmt.Sprintf("%s (%s) checked out at %s", name, trade, site)
		case "overtime":
			ev.Severity = "low"
			ev.Description = fmt.Sprintf("%s approved for %d hours overtime", name, sim.IntBetween(r, 1, 4))
		case "training":
			ev.Description = fmt.Sprintf("%s completed working-at-height training", name)
		case "certification":
			ev.Severity = "medium"
			ev.Description = fmt.Sprintf("%s trade certification expires in %d days", name, sim.IntBetween(r, 3, 30))
		case "safety_violation":
			ev.Severity = "high"
			ev.Description = fmt.Sprintf("%s observed without harness on scaffold at %s", name, site)
		case "injury":
			ev.Severity = "critical"
			ev.Description = fmt.Sprintf("Minor injury reported for %s (%s); first aid administered", name, trade)
		}
		out = append(out, ev)
	}
	return out
}

func (g *Generator) EquipmentTelemetry(r sim.Rand, n int) []domain.EquipmentTelemetry {
	out := make([]domain.EquipmentTelemetry, 0, max(n, 0))
	for i := 0; i < n; i++ {
		eq := sim.Pick(r, equipmentClasses)
		status := sim.Pick(r, equipmentStatuses)
		t := domain.EquipmentTelemetry{
			ID:           g.ids.Next("EQ"),
			Timestamp:    g.stamp(i),
			EquipmentID:  fmt.Sprintf("%s-%03d", eq.prefix, sim.IntBetween(r, 1, 60)),
			Class:        eq.class,
			SiteID:       sim.Pick(r, g.siteIDs),
			Status:       status,
			EngineHours:  sim.Round1(sim.Between(r, 200, 12000)),
			FuelLevel:    sim.Round1(sim.Between(r, 8, 100)),
			TemperatureC: sim.Round1(sim.Between(r, eq.temp[0], eq.temp[1])),
			Vibration:    sim.Round2(sim.Between(r, 0.5, 9.5)),
			Alerts:       []string{},
		}
		if status == "operating" {
			t.Load = sim.Round1(sim.Between(r, 35, 100))
		}
		if t.FuelLevel < 15 {
			t.Alerts = append(t.Alerts, "low_fuel")
		}
		if t.TemperatureC > eq.temp[1]-5 {
			t.Alerts = append(t.Alerts, "high_temperature")
		}
		if t.Vibration > 8 {
			t.Alerts = append(t.Alerts, "excess_vibration")
		}
		if status == "fault" {
			t.Alerts = append(t.Alerts, "fault_code")
		}
		lastService := t.Timestamp.Add(-time.Duration(sim.IntBetween(r, 5, 240)) * 24 * time.Hour)
		serviceOutlook(&t, eq.failures, lastService)
		out = append(out, t)
	}
	return out
}

func (g *Generator) QualityControlIncidents(r sim.Rand, n int) []domain.QualityControlIncident {
	out := make([]domain.QualityControlIncident, 0, max(n, 0))
	for i := 0; i < n; i++ {
		category := sim.Pick(r, qcCategories)
		severity := sim.Pick(r, qcSeverities)
		cost := qcCost[severity]
		out = append(out, domain.QualityControlIncident{
			ID:          g.ids.Next("QC"),
			Timestamp:   g.stamp(i),
			SiteID:      sim.Pick(r, g.siteIDs),
			Category:    category,
			Severity:    severity,
			Description: sim.Pick(r, qcFindings[category]),
			Inspector:   sim.Pick(r, inspectors),
			Status:      sim.Pick(r, qcStatuses),
			CostImpact:  math.Round(sim.Between(r, cost[0], cost[1])),
		})
	}
	return out
}
