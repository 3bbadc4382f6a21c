// Package synth recomputes the EnhancedRealtimeData snapshot from the static
// catalog, the current conditions and bounded jitter.
package synth

import (
	"math"
	"time"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/conditions"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/dataset"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

// Expense category shares; overhead takes the remainder.
const (
	laborShare     = 0.42
	materialsShare = 0.35
	equipmentShare = 0.15
)

// Baselines are the fixed magnitudes the finance and HR figures jitter around.
type Baselines struct {
	DailyRevenue     float64 // BDT
	ExpenseRatio     float64 // fraction of revenue
	AttendanceRate   float64 // percent
	DefectRate       float64 // percent
	ComplianceRate   float64 // percent
	OnTimeDelivery   float64 // percent
	FuelEfficiency   float64 // percent
	WorkingDaysMonth float64
}

var DefaultBaselines = Baselines{
	DailyRevenue:     28_500_000,
	ExpenseRatio:     0.78,
	AttendanceRate:   92,
	DefectRate:       2.2,
	ComplianceRate:   95,
	OnTimeDelivery:   94,
	FuelEfficiency:   78,
	WorkingDaysMonth: 22,
}

type equipmentProfile struct {
	name        string
	utilization float64
	backlog     float64
}

var equipmentProfiles = [4]equipmentProfile{
	{name: "cranes", utilization: 0.82, backlog: 0.10},
	{name: "excavators", utilization: 0.72, backlog: 0.10},
	{name: "mixers", utilization: 0.68, backlog: 0.08},
	{name: "trucks", utilization: 0.78, backlog: 0.05},
}

type materialProfile struct {
	name     string
	unit     string
	coverage float64
}

var materialProfiles = [4]materialProfile{
	{name: "cement", unit: "bags", coverage: 0.86},
	{name: "steel", unit: "tonnes", coverage: 0.74},
	{name: "bricks", unit: "thousand", coverage: 0.90},
	{name: "sand", unit: "cubic metres", coverage: 0.95},
}

// Weather modifiers keyed by weather type.
var (
	attendanceShift = map[domain.WeatherType]float64{
		domain.WeatherCloudy: -1, domain.WeatherHeat: -3, domain.WeatherRain: -5, domain.WeatherStorm: -15,
	}
	safetyShift = map[domain.WeatherType]float64{
		domain.WeatherHeat: -1, domain.WeatherRain: -2, domain.WeatherStorm: -5,
	}
	expenseShift = map[domain.WeatherType]float64{
		domain.WeatherRain: 0.03, domain.WeatherStorm: 0.06,
	}
	supplyShift = map[domain.WeatherType]float64{
		domain.WeatherRain: -0.05, domain.WeatherStorm: -0.10,
	}
	defectShift = map[domain.WeatherType]float64{
		domain.WeatherHeat: 0.3, domain.WeatherRain: 0.6, domain.WeatherStorm: 1.0,
	}
	delayShift = map[domain.WeatherType]int{
		domain.WeatherRain: 1, domain.WeatherStorm: 3,
	}
)

// equipmentWeather scales utilization per class; cranes stand down first.
func equipmentWeather(w domain.WeatherType, class string) float64 {
	switch w {
	case domain.WeatherStorm:
		if class == "cranes" {
			return 0.3
		}
		return 0.6
	case domain.WeatherRain:
		if class == "mixers" {
			return 0.6
		}
		if class == "cranes" {
			return 0.8
		}
		return 0.9
	case domain.WeatherHeat:
		return 0.95
	}
	return 1
}

type cluster struct {
	area         string
	sites        int
	workers      int
	progress     float64
	productivity float64
	safety       float64
}

// Synthesizer holds the catalog aggregates that do not change between ticks.
type Synthesizer struct {
	base        Baselines
	clusters    []cluster
	sites       int
	activeSites int
	workers     int
	issues      int
	equipment   [4]int
	required    [4]float64
	budget      float64
	spent       float64
	earned      float64
}

func New(c *dataset.Catalog) *Synthesizer {
	return NewWithBaselines(c, DefaultBaselines)
}

func NewWithBaselines(c *dataset.Catalog, b Baselines) *Synthesizer {
	s := &Synthesizer{base: b}
	byArea := map[string]*cluster{}
	for _, area := range dataset.Areas() {
		byArea[area] = &cluster{area: area}
	}
	for _, site := range c.Sites() {
		s.sites++
		if site.Status != domain.StatusCompleted {
			s.activeSites++
		}
		s.workers += site.Workers
		s.issues += site.Details.Issues
		s.budget += site.Budget
		s.spent += site.Spent
		s.earned += site.Budget * site.Progress / 100

		eq := site.Details.Equipment
		s.equipment[0] += eq.Cranes
		s.equipment[1] += eq.Excavators
		s.equipment[2] += eq.Mixers
		s.equipment[3] += eq.Trucks

		m := site.Details.Materials
		s.required[0] += float64(m.Cement)
		s.required[1] += float64(m.Steel)
		s.required[2] += float64(m.Bricks)
		s.required[3] += float64(m.Sand)

		cl, ok := byArea[dataset.AreaOf(site.ID)]
		if !ok {
			continue
		}
		cl.sites++
		cl.workers += site.Workers
		cl.progress += site.Progress
		cl.productivity += site.Details.Productivity
		cl.safety += site.Details.SafetyScore
	}
	for _, area := range dataset.Areas() {
		cl := byArea[area]
		if cl.sites > 0 {
			n := float64(cl.sites)
			cl.progress /= n
			cl.productivity /= n
			cl.safety /= n
		}
		s.clusters = append(s.clusters, *cl)
	}
	return s
}

// Generate draws fresh conditions for now and synthesizes a snapshot.
func (s *Synthesizer) Generate(r sim.Rand, now time.Time) *domain.EnhancedRealtimeData {
	return s.Snapshot(r, conditions.Generate(r, now))
}

// Snapshot synthesizes a snapshot under the given conditions. Every
// percentage is clamped to [0,100] and every count floored at zero.
func (s *Synthesizer) Snapshot(r sim.Rand, cond domain.Conditions) *domain.EnhancedRealtimeData {
	w := cond.Weather.Type
	attendance := sim.Round1(sim.ClampPercent(s.base.AttendanceRate + attendanceShift[w] + sim.Between(r, -2, 2)))

	d := &domain.EnhancedRealtimeData{
		Timestamp:  cond.Time,
		Conditions: cond,
	}
	d.Sites = s.siteMetrics(r, cond, attendance)
	d.Equipment = s.equipmentMetrics(r, cond)
	d.Finance = s.financeMetrics(r, cond)
	d.SupplyChain = s.supplyMetrics(r, w)
	d.Quality = s.qualityMetrics(r, w)
	d.HR = s.hrMetrics(r, w, attendance)
	return d
}

func (s *Synthesizer) siteMetrics(r sim.Rand, cond domain.Conditions, attendance float64) domain.SiteMetrics {
	w := cond.Weather
	shift := conditions.ShiftFactor(cond.TimeOfDay)
	rate := conditions.RateFactor(w, cond.PrayerTime)

	m := domain.SiteMetrics{
		TotalSites:    s.sites,
		ActiveSites:   s.activeSites,
		TotalWorkers:  s.workers,
		WeatherImpact: w.ProductivityImpact,
		Clusters:      make([]domain.ClusterMetrics, 0, len(s.clusters)),
	}

	var progress, productivity, safety float64
	for _, cl := range s.clusters {
		prod := sim.Round1(sim.ClampPercent(cl.productivity*rate + sim.Between(r, -3, 3)))
		safe := sim.Round1(sim.ClampPercent(cl.safety + safetyShift[w.Type] + sim.Between(r, -1, 1)))
		active := int(math.Round(float64(cl.workers) * attendance / 100 * shift))
		if active > cl.workers {
			active = cl.workers
		}
		m.Clusters = append(m.Clusters, domain.ClusterMetrics{
			Area:          cl.area,
			Sites:         cl.sites,
			Workers:       cl.workers,
			ActiveWorkers: sim.NonNegative(active),
			Progress:      sim.Round1(sim.ClampPercent(cl.progress)),
			Productivity:  prod,
			Safety:        safe,
		})
		m.ActiveWorkers += sim.NonNegative(active)
		n := float64(cl.sites)
		progress += cl.progress * n
		productivity += prod * n
		safety += safe * n
	}
	if s.sites > 0 {
		n := float64(s.sites)
		m.AvgProgress = sim.Round1(sim.ClampPercent(progress / n))
		m.AvgProductivity = sim.Round1(sim.ClampPercent(productivity / n))
		m.AvgSafety = sim.Round1(sim.ClampPercent(safety / n))
	}

	issues := s.issues + sim.IntBetween(r, -2, 2)
	if w.Type == domain.WeatherRain || w.Type == domain.WeatherStorm {
		issues++
	}
	m.OpenIssues = sim.NonNegative(issues)
	return m
}

func (s *Synthesizer) equipmentMetrics(r sim.Rand, cond domain.Conditions) domain.EquipmentMetrics {
	night := 1.0
	if cond.TimeOfDay == domain.Night {
		night = 0.7
	}

	var classes [4]domain.EquipmentClass
	var total, active, backlog int
	for i, p := range equipmentProfiles {
		n := s.equipment[i]
		ratio := sim.Clamp(p.utilization*equipmentWeather(cond.Weather.Type, p.name)*night+sim.Between(r, -0.12, 0.12), 0, 1)
		a := int(math.Round(float64(n) * ratio))
		if a > n {
			a = n
		}
		b := sim.NonNegative(int(math.Round(float64(n)*p.backlog)) + sim.IntBetween(r, -1, 2))
		var util float64
		if n > 0 {
			util = sim.Round1(sim.ClampPercent(float64(a) / float64(n) * 100))
		}
		classes[i] = domain.EquipmentClass{Name: p.name, Total: n, Active: a, Utilization: util, MaintenanceBacklog: b}
		total += n
		active += a
		backlog += b
	}

	m := domain.EquipmentMetrics{
		Cranes:             classes[0],
		Excavators:         classes[1],
		Mixers:             classes[2],
		Trucks:             classes[3],
		MaintenanceBacklog: backlog,
		ActiveAlerts:       backlog/2 + sim.IntBetween(r, 0, 2),
	}
	if total > 0 {
		m.OverallUtilization = sim.Round1(sim.ClampPercent(float64(active) / float64(total) * 100))
	}
	fuel := s.base.FuelEfficiency + sim.Between(r, -6, 6)
	if cond.Weather.Type == domain.WeatherHeat {
		fuel -= 3
	}
	m.FuelEfficiency = sim.Round1(sim.ClampPercent(fuel))
	return m
}

func (s *Synthesizer) financeMetrics(r sim.Rand, cond domain.Conditions) domain.FinanceMetrics {
	today := sim.Round2(sim.Vary(r, s.base.DailyRevenue, 8))
	month := sim.Round2(today * s.base.WorkingDaysMonth * sim.Vary(r, 1, 4))
	ytd := sim.Round2(month * float64(cond.Time.Month()) * sim.Vary(r, 1, 2))

	ratio := sim.Clamp(s.base.ExpenseRatio+expenseShift[cond.Weather.Type]+sim.Between(r, -0.05, 0.05), 0.55, 0.98)
	total := sim.Round2(today * ratio)
	labor := sim.Round2(total * laborShare)
	materials := sim.Round2(total * materialsShare)
	equipment := sim.Round2(total * equipmentShare)
	overhead := sim.Round2(total - labor - materials - equipment)

	f := domain.FinanceMetrics{
		Revenue: domain.Revenue{Today: today, Month: month, YTD: ytd},
		Expenses: domain.Expenses{
			Total:     total,
			Labor:     labor,
			Materials: materials,
			Equipment: equipment,
			Overhead:  overhead,
		},
		ExpenseRatio: sim.Round1(sim.ClampPercent(total / today * 100)),
	}
	if s.budget > 0 {
		f.BudgetUtilization = sim.Round1(sim.ClampPercent(s.spent / s.budget * 100))
	}
	if s.earned > 0 {
		f.CostVariance = sim.Round1((s.spent/s.earned-1)*100 + sim.Between(r, -3, 3))
	}

	inflow := sim.Round2(today * 30 * sim.Vary(r, 1, 5))
	outflow := sim.Round2(total * 30 * sim.Vary(r, 1, 5))
	f.Cashflow = domain.Cashflow{
		Inflow30:    inflow,
		Outflow30:   outflow,
		Net30:       sim.Round2(inflow - outflow),
		Projected90: sim.Round2((inflow - outflow) * 3 * sim.Vary(r, 1, 10)),
	}
	return f
}

func (s *Synthesizer) supplyMetrics(r sim.Rand, w domain.WeatherType) domain.SupplyChainMetrics {
	m := domain.SupplyChainMetrics{
		Inventory:        make([]domain.MaterialInventory, 0, len(materialProfiles)),
		LowestStockLevel: 100,
	}
	for i, p := range materialProfiles {
		req := s.required[i]
		coverage := sim.Clamp(p.coverage+supplyShift[w]+sim.Between(r, -0.12, 0.12), 0, 1)
		inv := domain.MaterialInventory{
			Name:     p.name,
			Unit:     p.unit,
			Current:  math.Round(req * coverage),
			Required: req,
			Level:    100,
		}
		if req > 0 {
			inv.Level = sim.Round1(sim.ClampPercent(inv.Current / req * 100))
		}
		if inv.Level < m.LowestStockLevel || m.CriticalMaterial == "" {
			m.LowestStockLevel = inv.Level
			m.CriticalMaterial = inv.Name
		}
		m.Inventory = append(m.Inventory, inv)
	}

	m.PendingDeliveries = sim.IntBetween(r, 4, 12)
	m.DelayedDeliveries = sim.IntBetween(r, 0, 3) + delayShift[w]
	m.Backlog = sim.IntBetween(r, 0, 6) + m.DelayedDeliveries
	m.OnTimeDeliveryRate = sim.Round1(sim.ClampPercent(s.base.OnTimeDelivery - float64(m.DelayedDeliveries)*3 + sim.Between(r, -2, 2)))
	return m
}

func (s *Synthesizer) qualityMetrics(r sim.Rand, w domain.WeatherType) domain.QualityMetrics {
	defect := sim.Round2(sim.ClampPercent(s.base.DefectRate + defectShift[w] + sim.Between(r, -0.8, 0.9)))
	critical := sim.IntBetween(r, 0, 2)
	if w == domain.WeatherStorm {
		critical++
	}
	major := sim.IntBetween(r, 2, 7)
	minor := sim.IntBetween(r, 8, 20)

	inspections := sim.IntBetween(r, 38, 52)
	passed := sim.NonNegative(inspections - critical - sim.IntBetween(r, 0, major))

	rework := float64(critical)*250_000 + float64(major)*80_000 + float64(minor)*12_000
	return domain.QualityMetrics{
		DefectRate:        defect,
		Critical:          critical,
		Major:             major,
		Minor:             minor,
		ComplianceRate:    sim.Round1(sim.ClampPercent(s.base.ComplianceRate - defect*1.2 + sim.Between(r, -1.5, 1.5))),
		InspectionsTotal:  inspections,
		InspectionsPassed: passed,
		ReworkCost:        sim.Round2(rework * sim.Vary(r, 1, 10)),
	}
}

func (s *Synthesizer) hrMetrics(r sim.Rand, w domain.WeatherType, attendance float64) domain.HRMetrics {
	present := int(math.Round(float64(s.workers) * attendance / 100))
	if present > s.workers {
		present = s.workers
	}
	incidents := sim.IntBetween(r, 0, 1)
	switch w {
	case domain.WeatherStorm:
		incidents++
	case domain.WeatherHeat:
		incidents += sim.IntBetween(r, 0, 1)
	}
	return domain.HRMetrics{
		TotalWorkforce:         s.workers,
		Present:                sim.NonNegative(present),
		AttendanceRate:         attendance,
		Overtime:               int(math.Round(float64(present) * sim.Between(r, 0.06, 0.14))),
		SafetyIncidents:        incidents,
		NearMisses:             sim.IntBetween(r, 1, 6),
		CertificationsValid:    sim.NonNegative(int(math.Round(float64(s.workers)*0.78)) + sim.IntBetween(r, -5, 5)),
		CertificationsExpiring: sim.IntBetween(r, 10, 35),
	}
}
