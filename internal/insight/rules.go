package insight

import (
	"fmt"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

// Evaluator inspects one snapshot and returns a prediction when its rule
// matches. ok is false on no match.
type Evaluator struct {
	Name string
	Eval func(d *domain.EnhancedRealtimeData) (p domain.AIPrediction, ok bool)
}

// Rules lists the evaluators in their stable tie-break order.
var Rules = []Evaluator{
	{Name: "delay-risk", Eval: DelayRisk},
	{Name: "cost-overrun", Eval: CostOverrun},
	{Name: "equipment-stress", Eval: EquipmentStress},
	{Name: "supply-shortage", Eval: SupplyShortage},
	{Name: "workforce-inefficiency", Eval: WorkforceInefficiency},
	{Name: "quality-anomaly", Eval: QualityAnomaly},
	{Name: "acceleration-opportunity", Eval: AccelerationOpportunity},
}

func f(v float64) *float64 { return &v }

func DelayRisk(d *domain.EnhancedRealtimeData) (domain.AIPrediction, bool) {
	prod := d.Sites.AvgProductivity
	switch {
	case d.Conditions.Weather.Type == domain.WeatherStorm:
		return domain.AIPrediction{
			Module:      "operations",
			Type:        domain.TypeRisk,
			Title:       "Storm will halt crane and concrete work",
			Description: fmt.Sprintf("%s. Lifting and pours across %d active sites are expected to stop until the warning clears.", d.Conditions.Weather.Description, d.Sites.ActiveSites),
			Confidence:  92,
			Impact: domain.Impact{
				Level:        domain.ImpactCritical,
				Financial:    f(4_500_000),
				Time:         f(3),
				Productivity: f(-40),
			},
			Probability: 95,
			Timeframe:   "next 24 hours",
			Actions: []domain.RecommendedAction{
				{Action: "Secure tower cranes and lower booms", Priority: "immediate", ExpectedOutcome: "No structural damage to lifting equipment"},
				{Action: "Reschedule concrete pours to the next clear window", Priority: "immediate", ExpectedOutcome: "Avoid cold joints and washed-out slabs"},
				{Action: "Reassign crews to indoor finishing work", Priority: "high", ExpectedOutcome: "Recover part of the lost labour hours"},
			},
			RelatedMetrics: []domain.MetricComparison{
				{Name: "Average productivity", Current: prod, Predicted: sim.Round1(sim.ClampPercent(prod * 0.6)), Unit: "%"},
				{Name: "Schedule slip", Current: 0, Predicted: 3, Unit: "days"},
			},
		}, true
	case prod < 70 && d.Conditions.Weather.Type == domain.WeatherRain:
		return domain.AIPrediction{
			Module:      "operations",
			Type:        domain.TypeForecast,
			Title:       "Monsoon rain is slowing site output",
			Description: fmt.Sprintf("Average productivity has dropped to %.1f%% under sustained rain. Excavation and external works are falling behind.", prod),
			Confidence:  85,
			Impact: domain.Impact{
				Level:        domain.ImpactHigh,
				Financial:    f(1_200_000),
				Time:         f(1),
				Productivity: f(sim.Round1(prod - 85)),
			},
			Probability: 78,
			Timeframe:   "next 48 hours",
			Actions: []domain.RecommendedAction{
				{Action: "Deploy dewatering pumps at foundation sites", Priority: "high", ExpectedOutcome: "Excavation resumes within hours of the rain stopping"},
				{Action: "Cover stockpiled cement and sand", Priority: "medium", ExpectedOutcome: "No material loss to moisture"},
			},
			RelatedMetrics: []domain.MetricComparison{
				{Name: "Average productivity", Current: prod, Predicted: sim.Round1(sim.ClampPercent(prod + 12)), Unit: "%"},
			},
		}, true
	}
	return domain.AIPrediction{}, false
}

func CostOverrun(d *domain.EnhancedRealtimeData) (domain.AIPrediction, bool) {
	ratio, variance := d.Finance.ExpenseRatio, d.Finance.CostVariance
	if !(ratio > 85 || variance > 5) {
		return domain.AIPrediction{}, false
	}
	level := domain.ImpactMedium
	if variance > 10 {
		level = domain.ImpactHigh
	}
	overrun := d.Finance.Expenses.Total * max(variance, 0) / 100 * 30
	return domain.AIPrediction{
		Module:      "finance",
		Type:        domain.TypeRisk,
		Title:       "Project costs trending over budget",
		Description: fmt.Sprintf("Expenses are running at %.1f%% of revenue with a cost variance of %.1f%%.", ratio, variance),
		Confidence:  87,
		Impact: domain.Impact{
			Level:     level,
			Financial: f(sim.Round2(overrun)),
		},
		Probability: sim.Round1(sim.Clamp(60+variance*2, 0, 95)),
		Timeframe:   "next 30 days",
		Actions: []domain.RecommendedAction{
			{Action: "Renegotiate rebar and cement rates with primary suppliers", Priority: "high", ExpectedOutcome: "3-5% material cost reduction"},
			{Action: "Review overtime approvals across sites", Priority: "medium", ExpectedOutcome: "Lower labour overhead"},
		},
		RelatedMetrics: []domain.MetricComparison{
			{Name: "Expense ratio", Current: ratio, Predicted: sim.Round1(ratio + 2), Unit: "%"},
			{Name: "Cost variance", Current: variance, Predicted: sim.Round1(variance + 1.5), Unit: "%"},
		},
	}, true
}

func EquipmentStress(d *domain.EnhancedRealtimeData) (domain.AIPrediction, bool) {
	util, backlog := d.Equipment.Cranes.Utilization, d.Equipment.MaintenanceBacklog
	hot, behind := util > 90, backlog > 10
	if !hot && !behind {
		return domain.AIPrediction{}, false
	}
	level := domain.ImpactHigh
	if hot && behind {
		level = domain.ImpactCritical
	}
	return domain.AIPrediction{
		Module:      "equipment",
		Type:        domain.TypeAnomaly,
		Title:       "Crane fleet under maintenance stress",
		Description: fmt.Sprintf("Crane utilization is %.1f%% with %d units waiting for service.", util, backlog),
		Confidence:  89,
		Impact: domain.Impact{
			Level:        level,
			Financial:    f(850_000),
			Time:         f(2),
			Productivity: f(-8),
		},
		Probability: 72,
		Timeframe:   "next 7 days",
		Actions: []domain.RecommendedAction{
			{Action: "Schedule preventive maintenance during night shift", Priority: "high", ExpectedOutcome: "Backlog cleared without daytime downtime"},
			{Action: "Hire a standby mobile crane for critical lifts", Priority: "medium", ExpectedOutcome: "No lift delays if a tower crane fails"},
		},
		RelatedMetrics: []domain.MetricComparison{
			{Name: "Crane utilization", Current: util, Predicted: 80, Unit: "%"},
			{Name: "Maintenance backlog", Current: float64(backlog), Predicted: 3, Unit: "units"},
		},
	}, true
}

func SupplyShortage(d *domain.EnhancedRealtimeData) (domain.AIPrediction, bool) {
	sc := d.SupplyChain
	if !(sc.LowestStockLevel < 75 || sc.DelayedDeliveries > 3) {
		return domain.AIPrediction{}, false
	}
	level := domain.ImpactMedium
	switch {
	case sc.LowestStockLevel < 40:
		level = domain.ImpactCritical
	case sc.LowestStockLevel < 60:
		level = domain.ImpactHigh
	}
	material := sc.CriticalMaterial
	if material == "" {
		material = "materials"
	}
	return domain.AIPrediction{
		Module:      "supply_chain",
		Type:        domain.TypeForecast,
		Title:       fmt.Sprintf("%s shortage expected", material),
		Description: fmt.Sprintf("%s stock is at %.1f%% of requirement with %d deliveries delayed.", material, sc.LowestStockLevel, sc.DelayedDeliveries),
		Confidence:  91,
		Impact: domain.Impact{
			Level:     level,
			Financial: f(2_000_000),
			Time:      f(2),
		},
		Probability: sim.Round1(sim.ClampPercent(100 - sc.LowestStockLevel)),
		Timeframe:   "next 5 days",
		Actions: []domain.RecommendedAction{
			{Action: fmt.Sprintf("Place an expedited order for %s", material), Priority: "high", ExpectedOutcome: "Stock restored above 80% within a week"},
			{Action: "Activate a secondary supplier", Priority: "medium", ExpectedOutcome: "Reduced dependence on delayed shipments"},
		},
		RelatedMetrics: []domain.MetricComparison{
			{Name: "Lowest stock level", Current: sc.LowestStockLevel, Predicted: sim.Round1(sim.ClampPercent(sc.LowestStockLevel - 10)), Unit: "%"},
			{Name: "Delayed deliveries", Current: float64(sc.DelayedDeliveries), Predicted: float64(sc.DelayedDeliveries + 1), Unit: "deliveries"},
		},
	}, true
}

func WorkforceInefficiency(d *domain.EnhancedRealtimeData) (domain.AIPrediction, bool) {
	att, prod := d.HR.AttendanceRate, d.Sites.AvgProductivity
	if !(att < 88 || prod < 75) {
		return domain.AIPrediction{}, false
	}
	return domain.AIPrediction{
		Module:      "workforce",
		Type:        domain.TypeOptimization,
		Title:       "Workforce output below plan",
		Description: fmt.Sprintf("Attendance is %.1f%% and average productivity %.1f%%. Crew allocation can be rebalanced.", att, prod),
		Confidence:  83,
		Impact: domain.Impact{
			Level:        domain.ImpactMedium,
			Financial:    f(600_000),
			Productivity: f(sim.Round1(85 - prod)),
		},
		Probability: 70,
		Timeframe:   "next 14 days",
		Actions: []domain.RecommendedAction{
			{Action: "Move idle crews from finishing sites to structure work", Priority: "medium", ExpectedOutcome: "5-8% productivity recovery"},
			{Action: "Introduce attendance bonus for the monsoon period", Priority: "low", ExpectedOutcome: "Attendance back above 90%"},
		},
		RelatedMetrics: []domain.MetricComparison{
			{Name: "Attendance rate", Current: att, Predicted: 92, Unit: "%"},
			{Name: "Average productivity", Current: prod, Predicted: 82, Unit: "%"},
		},
	}, true
}

func QualityAnomaly(d *domain.EnhancedRealtimeData) (domain.AIPrediction, bool) {
	q := d.Quality
	if !(q.DefectRate > 3 || q.Critical > 2) {
		return domain.AIPrediction{}, false
	}
	level := domain.ImpactHigh
	if q.Critical > 4 {
		level = domain.ImpactCritical
	}
	return domain.AIPrediction{
		Module:      "quality",
		Type:        domain.TypeAnomaly,
		Title:       "Defect rate above tolerance",
		Description: fmt.Sprintf("Defect rate is %.1f%% with %d critical findings open.", q.DefectRate, q.Critical),
		Confidence:  88,
		Impact: domain.Impact{
			Level:     level,
			Financial: f(sim.Round2(q.ReworkCost * 1.5)),
			Time:      f(1),
		},
		Probability: 80,
		Timeframe:   "next 10 days",
		Actions: []domain.RecommendedAction{
			{Action: "Hold pours pending third-party cube tests", Priority: "high", ExpectedOutcome: "No defective concrete cast into structure"},
			{Action: "Run a toolbox talk on rebar cover and shuttering", Priority: "medium", ExpectedOutcome: "Fewer repeat structural findings"},
		},
		RelatedMetrics: []domain.MetricComparison{
			{Name: "Defect rate", Current: q.DefectRate, Predicted: 2, Unit: "%"},
			{Name: "Critical defects", Current: float64(q.Critical), Predicted: 1, Unit: "findings"},
		},
	}, true
}

func AccelerationOpportunity(d *domain.EnhancedRealtimeData) (domain.AIPrediction, bool) {
	prod, att := d.Sites.AvgProductivity, d.HR.AttendanceRate
	if !(d.Conditions.Weather.Type == domain.WeatherClear && prod > 85 && att > 93) {
		return domain.AIPrediction{}, false
	}
	return domain.AIPrediction{
		Module:      "operations",
		Type:        domain.TypeOpportunity,
		Title:       "Clear window to accelerate structure work",
		Description: fmt.Sprintf("Productivity is %.1f%% with %.1f%% attendance under clear skies. Extra pours can pull the schedule forward.", prod, att),
		Confidence:  80,
		Impact: domain.Impact{
			Level:        domain.ImpactMedium,
			Financial:    f(-900_000),
			Time:         f(-2),
			Productivity: f(6),
		},
		Probability: 75,
		Timeframe:   "next 72 hours",
		Actions: []domain.RecommendedAction{
			{Action: "Add an evening concrete pour at structure-phase sites", Priority: "medium", ExpectedOutcome: "Two days gained on the slab cycle"},
		},
		RelatedMetrics: []domain.MetricComparison{
			{Name: "Average productivity", Current: prod, Predicted: sim.Round1(sim.ClampPercent(prod + 4)), Unit: "%"},
		},
	}, true
}
