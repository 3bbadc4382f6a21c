package domain

import (
	"fmt"
	"time"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Midday    TimeOfDay = "midday"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

type WeatherType string

const (
	WeatherClear  WeatherType = "clear"
	WeatherCloudy WeatherType = "cloudy"
	WeatherHeat   WeatherType = "heat"
	WeatherRain   WeatherType = "rain"
	WeatherStorm  WeatherType = "storm"
)

// Weather.ProductivityImpact is a signed percentage, zero or negative.
type Weather struct {
	Type               WeatherType `json:"type"`
	Description        string      `json:"description"`
	TemperatureC       float64     `json:"temperature_c"`
	Humidity           float64     `json:"humidity"`
	ProductivityImpact float64     `json:"productivity_impact"`
}

type Conditions struct {
	Time               time.Time `json:"time"`
	TimeOfDay          TimeOfDay `json:"time_of_day"`
	Weather            Weather   `json:"weather"`
	PrayerTime         bool      `json:"prayer_time"`
	ProductivityFactor float64   `json:"productivity_factor"`
}

type ClusterMetrics struct {
	Area          string  `json:"area"`
	Sites         int     `json:"sites"`
	Workers       int     `json:"workers"`
	ActiveWorkers int     `json:"active_workers"`
	Progress      float64 `json:"progress"`
	Productivity  float64 `json:"productivity"`
	Safety        float64 `json:"safety"`
}

type SiteMetrics struct {
	TotalSites      int              `json:"total_sites"`
	ActiveSites     int              `json:"active_sites"`
	TotalWorkers    int              `json:"total_workers"`
	ActiveWorkers   int              `json:"active_workers"`
	AvgProgress     float64          `json:"avg_progress"`
	AvgSafety       float64          `json:"avg_safety"`
	AvgProductivity float64          `json:"avg_productivity"`
	OpenIssues      int              `json:"open_issues"`
	WeatherImpact   float64          `json:"weather_impact"`
	Clusters        []ClusterMetrics `json:"clusters"`
}

type EquipmentClass struct {
	Name               string  `json:"name"`
	Total              int     `json:"total"`
	Active             int     `json:"active"`
	Utilization        float64 `json:"utilization"`
	MaintenanceBacklog int     `json:"maintenance_backlog"`
}

type EquipmentMetrics struct {
	Cranes             EquipmentClass `json:"cranes"`
	Excavators         EquipmentClass `json:"excavators"`
	Mixers             EquipmentClass `json:"mixers"`
	Trucks             EquipmentClass `json:"trucks"`
	OverallUtilization float64        `json:"overall_utilization"`
	MaintenanceBacklog int            `json:"maintenance_backlog"`
	FuelEfficiency     float64        `json:"fuel_efficiency"`
	ActiveAlerts       int            `json:"active_alerts"`
}

// Classes returns the four equipment classes in a fixed order.
func (e EquipmentMetrics) Classes() []EquipmentClass {
	return []EquipmentClass{e.Cranes, e.Excavators, e.Mixers, e.Trucks}
}

type Revenue struct {
	Today float64 `json:"today"`
	Month float64 `json:"month"`
	YTD   float64 `json:"ytd"`
}

type Expenses struct {
	Total     float64 `json:"total"`
	Labor     float64 `json:"labor"`
	Materials float64 `json:"materials"`
	Equipment float64 `json:"equipment"`
	Overhead  float64 `json:"overhead"`
}

type Cashflow struct {
	Inflow30    float64 `json:"inflow_30d"`
	Outflow30   float64 `json:"outflow_30d"`
	Net30       float64 `json:"net_30d"`
	Projected90 float64 `json:"projected_90d"`
}

// FinanceMetrics. CostVariance is a signed percentage of spend over earned
// value and is not bounded to [0,100].
type FinanceMetrics struct {
	Revenue           Revenue  `json:"revenue"`
	Expenses          Expenses `json:"expenses"`
	ExpenseRatio      float64  `json:"expense_ratio"`
	BudgetUtilization float64  `json:"budget_utilization"`
	CostVariance      float64  `json:"cost_variance"`
	Cashflow          Cashflow `json:"cashflow"`
}

type MaterialInventory struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Current  float64 `json:"current"`
	Required float64 `json:"required"`
	Level    float64 `json:"level"`
}

type SupplyChainMetrics struct {
	Inventory          []MaterialInventory `json:"inventory"`
	LowestStockLevel   float64             `json:"lowest_stock_level"`
	CriticalMaterial   string              `json:"critical_material"`
	PendingDeliveries  int                 `json:"pending_deliveries"`
	DelayedDeliveries  int                 `json:"delayed_deliveries"`
	Backlog            int                 `json:"backlog"`
	OnTimeDeliveryRate float64             `json:"on_time_delivery_rate"`
}

type QualityMetrics struct {
	DefectRate        float64 `json:"defect_rate"`
	Critical          int     `json:"critical"`
	Major             int     `json:"major"`
	Minor             int     `json:"minor"`
	ComplianceRate    float64 `json:"compliance_rate"`
	InspectionsTotal  int     `json:"inspections_total"`
	InspectionsPassed int     `json:"inspections_passed"`
	ReworkCost        float64 `json:"rework_cost"`
}

type HRMetrics struct {
	TotalWorkforce         int     `json:"total_workforce"`
	Present                int     `json:"present"`
	AttendanceRate         float64 `json:"attendance_rate"`
	Overtime               int     `json:"overtime"`
	SafetyIncidents        int     `json:"safety_incidents"`
	NearMisses             int     `json:"near_misses"`
	CertificationsValid    int     `json:"certifications_valid"`
	CertificationsExpiring int     `json:"certifications_expiring"`
}

// EnhancedRealtimeData is one complete snapshot. It is replaced wholesale on
// every tick and never patched.
type EnhancedRealtimeData struct {
	Timestamp   time.Time          `json:"timestamp"`
	Conditions  Conditions         `json:"conditions"`
	Sites       SiteMetrics        `json:"sites"`
	Equipment   EquipmentMetrics   `json:"equipment"`
	Finance     FinanceMetrics     `json:"finance"`
	SupplyChain SupplyChainMetrics `json:"supply_chain"`
	Quality     QualityMetrics     `json:"quality"`
	HR          HRMetrics          `json:"hr"`
}

// Validate returns an error naming a field outside its domain, or nil.
func (d *EnhancedRealtimeData) Validate() error {
	pct := map[string]float64{
		"sites.avg_progress":              d.Sites.AvgProgress,
		"sites.avg_safety":                d.Sites.AvgSafety,
		"sites.avg_productivity":          d.Sites.AvgProductivity,
		"equipment.overall_utilization":   d.Equipment.OverallUtilization,
		"equipment.fuel_efficiency":       d.Equipment.FuelEfficiency,
		"finance.expense_ratio":           d.Finance.ExpenseRatio,
		"finance.budget_utilization":      d.Finance.BudgetUtilization,
		"supply_chain.lowest_stock_level": d.SupplyChain.LowestStockLevel,
		"supply_chain.on_time_rate":       d.SupplyChain.OnTimeDeliveryRate,
		"quality.defect_rate":             d.Quality.DefectRate,
		"quality.compliance_rate":         d.Quality.ComplianceRate,
		"hr.attendance_rate":              d.HR.AttendanceRate,
		"conditions.productivity_factor":  d.Conditions.ProductivityFactor * 100,
	}
	for _, c := range d.Sites.Clusters {
		pct["cluster."+c.Area+".progress"] = c.Progress
		pct["cluster."+c.Area+".productivity"] = c.Productivity
		pct["cluster."+c.Area+".safety"] = c.Safety
	}
	for _, c := range d.Equipment.Classes() {
		pct["equipment."+c.Name+".utilization"] = c.Utilization
	}
	for _, m := range d.SupplyChain.Inventory {
		pct["inventory."+m.Name+".level"] = m.Level
	}
	for name, v := range pct {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s=%v outside [0,100]", name, v)
		}
	}

	counts := map[string]int{
		"sites.total_workers":        d.Sites.TotalWorkers,
		"sites.active_workers":       d.Sites.ActiveWorkers,
		"sites.open_issues":          d.Sites.OpenIssues,
		"equipment.backlog":          d.Equipment.MaintenanceBacklog,
		"equipment.active_alerts":    d.Equipment.ActiveAlerts,
		"supply_chain.pending":       d.SupplyChain.PendingDeliveries,
		"supply_chain.delayed":       d.SupplyChain.DelayedDeliveries,
		"supply_chain.backlog":       d.SupplyChain.Backlog,
		"quality.critical":           d.Quality.Critical,
		"quality.major":              d.Quality.Major,
		"quality.minor":              d.Quality.Minor,
		"quality.inspections":        d.Quality.InspectionsTotal,
		"quality.passed":             d.Quality.InspectionsPassed,
		"hr.present":                 d.HR.Present,
		"hr.overtime":                d.HR.Overtime,
		"hr.safety_incidents":        d.HR.SafetyIncidents,
		"hr.near_misses":             d.HR.NearMisses,
		"hr.certifications_valid":    d.HR.CertificationsValid,
		"hr.certifications_expiring": d.HR.CertificationsExpiring,
	}
	for _, c := range d.Equipment.Classes() {
		counts["equipment."+c.Name+".active"] = c.Active
		counts["equipment."+c.Name+".backlog"] = c.MaintenanceBacklog
		if c.Active > c.Total {
			return fmt.Errorf("equipment.%s active %d exceeds total %d", c.Name, c.Active, c.Total)
		}
	}
	for _, c := range d.Sites.Clusters {
		counts["cluster."+c.Area+".active_workers"] = c.ActiveWorkers
	}
	for name, v := range counts {
		if v < 0 {
			return fmt.Errorf("%s=%d is negative", name, v)
		}
	}
	if d.Quality.InspectionsPassed > d.Quality.InspectionsTotal {
		return fmt.Errorf("quality.passed %d exceeds inspections %d", d.Quality.InspectionsPassed, d.Quality.InspectionsTotal)
	}
	if d.HR.Present > d.HR.TotalWorkforce {
		return fmt.Errorf("hr.present %d exceeds workforce %d", d.HR.Present, d.HR.TotalWorkforce)
	}
	return nil
}
