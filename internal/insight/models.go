package insight

import (
	"time"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

var trainedAt = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

// Models is the static model registry shown alongside predictions. The
// accuracies are reference figures and are not updated from outcomes.
func Models() []domain.MLModel {
	return []domain.MLModel{
		{Name: "Schedule Delay Forecaster", Version: "2.3.1", Accuracy: 91.2, LastTrained: trainedAt, Features: []string{"weather", "productivity", "phase", "prayer_time"}},
		{Name: "Cost Overrun Detector", Version: "1.8.0", Accuracy: 87.5, LastTrained: trainedAt, Features: []string{"expense_ratio", "cost_variance", "budget_utilization"}},
		{Name: "Equipment Failure Predictor", Version: "3.0.2", Accuracy: 89.4, LastTrained: trainedAt.AddDate(0, 0, 7), Features: []string{"utilization", "engine_hours", "vibration", "maintenance_backlog"}},
		{Name: "Material Demand Planner", Version: "2.1.0", Accuracy: 92.8, LastTrained: trainedAt.AddDate(0, 0, 3), Features: []string{"inventory_level", "delayed_deliveries", "consumption_rate"}},
		{Name: "Workforce Optimizer", Version: "1.5.4", Accuracy: 84.6, LastTrained: trainedAt, Features: []string{"attendance", "productivity", "trade_mix", "overtime"}},
		{Name: "Quality Anomaly Detector", Version: "2.0.3", Accuracy: 88.9, LastTrained: trainedAt.AddDate(0, 0, 10), Features: []string{"defect_rate", "critical_findings", "inspection_pass_rate"}},
		{Name: "Acceleration Advisor", Version: "1.1.0", Accuracy: 81.7, LastTrained: trainedAt.AddDate(0, 0, 14), Features: []string{"weather", "productivity", "attendance"}},
	}
}

// SystemAccuracy is the mean model accuracy rounded to one decimal.
func SystemAccuracy(models []domain.MLModel) float64 {
	if len(models) == 0 {
		return 0
	}
	var sum float64
	for _, m := range models {
		sum += m.Accuracy
	}
	return sim.Round1(sum / float64(len(models)))
}
