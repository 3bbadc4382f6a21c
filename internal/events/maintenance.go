package events

import (
	"time"

	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/maintenance"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

// ServiceInterval is the scheduled service cycle for site machinery.
const ServiceInterval = 180 * 24 * time.Hour

// serviceOutlook fills the maintenance fields of t from its engine hours,
// the class failure rate and the last service date, and raises service_due
// once the next service date has passed.
func serviceOutlook(t *domain.EquipmentTelemetry, failuresPerYear float64, lastService time.Time) {
	health := maintenance.AssetHealth{
		HoursRun:           t.EngineHours,
		FailureRatePerYear: failuresPerYear,
		LastService:        lastService,
		ServiceInterval:    ServiceInterval,
	}
	t.LastService = lastService
	t.NextService = maintenance.NextServiceDate(health)
	t.FailureRisk30d = sim.Round1(maintenance.FailureRisk(failuresPerYear, 30*24*time.Hour) * 100)
	t.FailureRisk90d = sim.Round1(maintenance.FailureRisk(failuresPerYear, 90*24*time.Hour) * 100)
	if !t.NextService.After(t.Timestamp) {
		t.Alerts = append(t.Alerts, "service_due")
	}
}
