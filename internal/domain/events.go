package domain

import "time"

type SupplyChainEvent struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Material    string    `json:"material"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	Supplier    string    `json:"supplier"`
	SiteID      string    `json:"site_id"`
	Status      string    `json:"status"`
	ETAHours    int       `json:"eta_hours"`
	Description string    `json:"description"`
}

type FinancialTransaction struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Type         string    `json:"type"`
	Category     string    `json:"category"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	SiteID       string    `json:"site_id"`
	Counterparty string    `json:"counterparty"`
	Status       string    `json:"status"`
	Description  string    `json:"description"`
}

type WorkforceEvent struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	WorkerID    string    `json:"worker_id"`
	WorkerName  string    `json:"worker_name"`
	Trade       string    `json:"trade"`
	SiteID      string    `json:"site_id"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
}

type EquipmentTelemetry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	EquipmentID  string    `json:"equipment_id"`
	Class        string    `json:"class"`
	SiteID       string    `json:"site_id"`
	Status       string    `json:"status"`
	EngineHours  float64   `json:"engine_hours"`
	FuelLevel    float64   `json:"fuel_level"`
	TemperatureC float64   `json:"temperature_c"`
	Vibration    float64   `json:"vibration"`
	Load         float64   `json:"load"`
	Alerts       []string  `json:"alerts"`

	LastService    time.Time `json:"last_service"`
	NextService    time.Time `json:"next_service"`
	FailureRisk30d float64   `json:"failure_risk_30d"` // percent
	FailureRisk90d float64   `json:"failure_risk_90d"` // percent
}

type QualityControlIncident struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	SiteID      string    `json:"site_id"`
	Category    string    `json:"category"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	Inspector   string    `json:"inspector"`
	Status      string    `json:"status"`
	CostImpact  float64   `json:"cost_impact"`
}
