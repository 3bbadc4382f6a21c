package realtime

import (
	"time"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
)

// Kind names what a tick changed.
type Kind string

const (
	KindSnapshot   Kind = "snapshot"
	KindEvents     Kind = "events"
	KindTelemetry  Kind = "telemetry"
	KindInsights   Kind = "insights"
	KindConnection Kind = "connection"
	KindRefresh    Kind = "refresh"
)

type Status string

const (
	StatusIdle         Status = "idle"
	StatusPolling      Status = "polling"
	StatusDisconnected Status = "disconnected"
	StatusStopped      Status = "stopped"
)

// Events holds the rolling buffers, newest first.
type Events struct {
	SupplyChain []domain.SupplyChainEvent       `json:"supply_chain"`
	Financial   []domain.FinancialTransaction   `json:"financial"`
	Workforce   []domain.WorkforceEvent         `json:"workforce"`
	Telemetry   []domain.EquipmentTelemetry     `json:"telemetry"`
	Quality     []domain.QualityControlIncident `json:"quality"`
	Insights    []domain.AIInsight              `json:"insights"`
}

// State is one immutable view of the feed. A new value is published on
// every tick; readers never see a half-applied update.
type State struct {
	Data        *domain.EnhancedRealtimeData `json:"data"`
	Events      Events                       `json:"events"`
	Predictions []domain.AIPrediction        `json:"predictions"`
	Connected   bool                         `json:"is_connected"`
	Status      Status                       `json:"status"`
	LastUpdate  time.Time                    `json:"last_update"`
}

// Update is delivered to subscribers after each state change.
type Update struct {
	Kind  Kind
	State *State
}

// EventKinds are the buffer names accepted by Events.ByKind.
var EventKinds = []string{"supply_chain", "financial", "workforce", "telemetry", "quality", "insights"}

// ByKind returns one buffer by name.
func (e Events) ByKind(kind string) (any, bool) {
	switch kind {
	case "supply_chain":
		return e.SupplyChain, true
	case "financial":
		return e.Financial, true
	case "workforce":
		return e.Workforce, true
	case "telemetry":
		return e.Telemetry, true
	case "quality":
		return e.Quality, true
	case "insights":
		return e.Insights, true
	}
	return nil, false
}
