package insight

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/dataset"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/synth"
)

var at = time.Date(2025, time.July, 3, 9, 0, 0, 0, time.UTC)

// calm returns a snapshot on which no rule fires.
func calm() *domain.EnhancedRealtimeData {
	d := &domain.EnhancedRealtimeData{Timestamp: at}
	d.Conditions.Weather = domain.Weather{Type: domain.WeatherCloudy, Description: "Overcast"}
	d.Sites.AvgProductivity = 80
	d.Sites.ActiveSites = 7
	d.HR.AttendanceRate = 92
	d.Finance.ExpenseRatio = 78
	d.Finance.CostVariance = 3
	d.Finance.Expenses.Total = 22_000_000
	d.Equipment.Cranes.Utilization = 80
	d.Equipment.MaintenanceBacklog = 5
	d.SupplyChain.LowestStockLevel = 85
	d.SupplyChain.CriticalMaterial = "Steel"
	d.SupplyChain.DelayedDeliveries = 1
	d.Quality.DefectRate = 2
	d.Quality.Critical = 1
	return d
}

func TestCalmSnapshotHasNoPredictions(t *testing.T) {
	got := NewEngine().Predict(calm())
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", got)
	}
	if got := NewEngine().Predict(nil); got == nil || len(got) != 0 {
		t.Fatalf("nil snapshot: %#v", got)
	}
}

func TestStormDelayRisk(t *testing.T) {
	d := calm()
	d.Conditions.Weather.Type = domain.WeatherStorm
	p, ok := DelayRisk(d)
	if !ok {
		t.Fatal("storm should raise delay risk")
	}
	if p.Probability != 95 || p.Impact.Time == nil || *p.Impact.Time != 3 {
		t.Fatalf("probability=%v time=%v", p.Probability, p.Impact.Time)
	}
	if p.Impact.Level != domain.ImpactCritical || p.Confidence != 92 {
		t.Fatalf("level=%s confidence=%v", p.Impact.Level, p.Confidence)
	}
	ranked := NewEngine().Predict(d)
	if len(ranked) == 0 || ranked[0].Title != p.Title {
		t.Fatalf("storm prediction should rank first, got %+v", ranked)
	}
}

func TestRainDelayRisk(t *testing.T) {
	tests := []struct {
		name    string
		weather domain.WeatherType
		prod    float64
		want    bool
	}{
		{"rain and slow", domain.WeatherRain, 65, true},
		{"rain at boundary", domain.WeatherRain, 70, false},
		{"slow but dry", domain.WeatherCloudy, 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := calm()
			d.Conditions.Weather.Type = tt.weather
			d.Sites.AvgProductivity = tt.prod
			p, ok := DelayRisk(d)
			if ok != tt.want {
				t.Fatalf("ok=%v want %v", ok, tt.want)
			}
			if ok && (p.Probability != 78 || *p.Impact.Time != 1 || p.Impact.Level != domain.ImpactHigh) {
				t.Fatalf("unexpected rain prediction %+v", p)
			}
		})
	}
}

func TestEquipmentStressBoundary(t *testing.T) {
	tests := []struct {
		util    float64
		backlog int
		want    domain.ImpactLevel
	}{
		{90, 10, ""},
		{91, 10, domain.ImpactHigh},
		{90, 11, domain.ImpactHigh},
		{91, 11, domain.ImpactCritical},
	}
	for _, tt := range tests {
		d := calm()
		d.Equipment.Cranes.Utilization = tt.util
		d.Equipment.MaintenanceBacklog = tt.backlog
		p, ok := EquipmentStress(d)
		if tt.want == "" {
			if ok {
				t.Fatalf("util=%v backlog=%d should not match", tt.util, tt.backlog)
			}
			continue
		}
		if !ok || p.Impact.Level != tt.want {
			t.Fatalf("util=%v backlog=%d: ok=%v level=%s want %s", tt.util, tt.backlog, ok, p.Impact.Level, tt.want)
		}
	}
}

func TestSupplyShortageLevels(t *testing.T) {
	tests := []struct {
		level   float64
		delayed int
		want    domain.ImpactLevel
	}{
		{75, 3, ""},
		{75, 4, domain.ImpactMedium},
		{70, 0, domain.ImpactMedium},
		{50, 0, domain.ImpactHigh},
		{39, 0, domain.ImpactCritical},
	}
	for _, tt := range tests {
		d := calm()
		d.SupplyChain.LowestStockLevel = tt.level
		d.SupplyChain.DelayedDeliveries = tt.delayed
		p, ok := SupplyShortage(d)
		if ok != (tt.want != "") || p.Impact.Level != tt.want {
			t.Fatalf("level=%v delayed=%d: ok=%v impact=%q want %q", tt.level, tt.delayed, ok, p.Impact.Level, tt.want)
		}
		if ok && !strings.Contains(p.Title, "Steel") {
			t.Fatalf("title should name the material: %q", p.Title)
		}
	}
}

func TestCostOverrunLevels(t *testing.T) {
	d := calm()
	d.Finance.ExpenseRatio = 86
	if p, ok := CostOverrun(d); !ok || p.Impact.Level != domain.ImpactMedium {
		t.Fatalf("ratio 86: ok=%v level=%s", ok, p.Impact.Level)
	}
	d = calm()
	d.Finance.CostVariance = 11
	if p, ok := CostOverrun(d); !ok || p.Impact.Level != domain.ImpactHigh {
		t.Fatalf("variance 11: ok=%v level=%s", ok, p.Impact.Level)
	}
	d = calm()
	d.Finance.ExpenseRatio, d.Finance.CostVariance = 85, 5
	if _, ok := CostOverrun(d); ok {
		t.Fatal("85/5 is within tolerance")
	}
}

func TestQualityAnomalyLevels(t *testing.T) {
	d := calm()
	d.Quality.Critical = 3
	if p, ok := QualityAnomaly(d); !ok || p.Impact.Level != domain.ImpactHigh {
		t.Fatalf("critical 3: ok=%v level=%s", ok, p.Impact.Level)
	}
	d.Quality.Critical = 5
	if p, ok := QualityAnomaly(d); !ok || p.Impact.Level != domain.ImpactCritical {
		t.Fatalf("critical 5: ok=%v level=%s", ok, p.Impact.Level)
	}
}

func TestAccelerationOpportunity(t *testing.T) {
	d := calm()
	d.Conditions.Weather.Type = domain.WeatherClear
	d.Sites.AvgProductivity = 86
	d.HR.AttendanceRate = 94
	p, ok := AccelerationOpportunity(d)
	if !ok || p.Type != domain.TypeOpportunity || *p.Impact.Time != -2 {
		t.Fatalf("ok=%v prediction=%+v", ok, p)
	}
	d.Sites.AvgProductivity = 85
	if _, ok := AccelerationOpportunity(d); ok {
		t.Fatal("productivity 85 should not qualify")
	}
}

func TestWorkforceInefficiency(t *testing.T) {
	d := calm()
	d.HR.AttendanceRate = 87
	if _, ok := WorkforceInefficiency(d); !ok {
		t.Fatal("attendance 87 should match")
	}
	d = calm()
	d.Sites.AvgProductivity = 75
	d.HR.AttendanceRate = 88
	if _, ok := WorkforceInefficiency(d); ok {
		t.Fatal("75/88 is on the boundary and should not match")
	}
}

func TestPredictIsDeterministic(t *testing.T) {
	s := synth.New(dataset.Default())
	r := sim.NewRand(42)
	e := NewEngine()
	for i := 0; i < 200; i++ {
		d := s.Generate(r, at.Add(time.Duration(i)*17*time.Minute))
		a, b := e.Predict(d), e.Predict(d)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("tick %d: predictions differ between calls", i)
		}
	}
}

func TestPredictRankingLaw(t *testing.T) {
	s := synth.New(dataset.Default())
	e := NewEngine()
	for seed := int64(1); seed <= 5; seed++ {
		r := sim.NewRand(seed)
		for i := 0; i < 500; i++ {
			ps := e.Predict(s.Generate(r, at.Add(time.Duration(i)*7*time.Minute)))
			for j := 1; j < len(ps); j++ {
				if ps[j-1].Score() < ps[j].Score() {
					t.Fatalf("seed %d tick %d: %s (%v) ranked above %s (%v)",
						seed, i, ps[j-1].Title, ps[j-1].Score(), ps[j].Title, ps[j].Score())
				}
			}
		}
	}
}

func TestRankKeepsRuleOrderOnTies(t *testing.T) {
	mk := func(title string) Evaluator {
		return Evaluator{Name: title, Eval: func(*domain.EnhancedRealtimeData) (domain.AIPrediction, bool) {
			return domain.AIPrediction{Title: title, Confidence: 50, Impact: domain.Impact{Level: domain.ImpactHigh}}, true
		}}
	}
	low := Evaluator{Name: "low", Eval: func(*domain.EnhancedRealtimeData) (domain.AIPrediction, bool) {
		return domain.AIPrediction{Title: "low", Confidence: 99, Impact: domain.Impact{Level: domain.ImpactLow}}, true
	}}
	ps := NewEngine(low, mk("first"), mk("second"), mk("third")).Predict(calm())
	var titles []string
	for _, p := range ps {
		titles = append(titles, p.Title)
	}
	if strings.Join(titles, ",") != "first,second,third,low" {
		t.Fatalf("order=%v", titles)
	}
	if ps[0].Module != "first" {
		t.Fatalf("module should default to rule name, got %q", ps[0].Module)
	}
}

func TestPredictionIDs(t *testing.T) {
	d := calm()
	d.Conditions.Weather.Type = domain.WeatherStorm
	d.Quality.Critical = 5
	ps := NewEngine().Predict(d)
	if len(ps) < 2 {
		t.Fatalf("expected several predictions, got %d", len(ps))
	}
	seen := map[string]bool{}
	for _, p := range ps {
		if seen[p.ID] {
			t.Fatalf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
		if !p.CreatedAt.Equal(at) {
			t.Fatalf("created_at=%v", p.CreatedAt)
		}
	}
	d.Timestamp = at.Add(time.Second)
	if NewEngine().Predict(d)[0].ID == ps[0].ID {
		t.Fatal("ids should change with the snapshot timestamp")
	}
}

func TestGenerateInsights(t *testing.T) {
	d := calm()
	d.Conditions.Weather.Type = domain.WeatherStorm
	e := NewEngine()
	ps := e.Predict(d)
	cards := e.GenerateInsights(d)
	if len(cards) != len(ps) {
		t.Fatalf("cards=%d predictions=%d", len(cards), len(ps))
	}
	for i, c := range cards {
		if c.PredictionID != ps[i].ID || c.Severity != ps[i].Impact.Level {
			t.Fatalf("card %d does not mirror its prediction: %+v", i, c)
		}
		if !strings.HasPrefix(c.ID, "INS-") || !c.Actionable {
			t.Fatalf("card %d: %+v", i, c)
		}
	}
}

func TestSystemAccuracy(t *testing.T) {
	if got := SystemAccuracy(Models()); got != 88.0 {
		t.Fatalf("accuracy=%v want 88.0", got)
	}
	if got := SystemAccuracy(nil); got != 0 {
		t.Fatalf("empty accuracy=%v", got)
	}
	if got := SystemAccuracy([]domain.MLModel{{Accuracy: 90}, {Accuracy: 85}}); got != 87.5 {
		t.Fatalf("accuracy=%v want 87.5", got)
	}
}
