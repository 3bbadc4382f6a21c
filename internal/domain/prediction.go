package domain

import "time"

type PredictionType string

const (
	TypeForecast     PredictionType = "forecast"
	TypeAnomaly      PredictionType = "anomaly"
	TypeOptimization PredictionType = "optimization"
	TypeRisk         PredictionType = "risk"
	TypeOpportunity  PredictionType = "opportunity"
)

type ImpactLevel string

const (
	ImpactCritical ImpactLevel = "critical"
	ImpactHigh     ImpactLevel = "high"
	ImpactMedium   ImpactLevel = "medium"
	ImpactLow      ImpactLevel = "low"
)

// Weight is the ranking multiplier of the level; unknown levels weigh 0.
func (l ImpactLevel) Weight() float64 {
	switch l {
	case ImpactCritical:
		return 4
	case ImpactHigh:
		return 3
	case ImpactMedium:
		return 2
	case ImpactLow:
		return 1
	}
	return 0
}

// Impact. Financial is BDT, Time is days (negative means days gained),
// Productivity is a signed percentage.
type Impact struct {
	Level        ImpactLevel `json:"level"`
	Financial    *float64    `json:"financial,omitempty"`
	Time         *float64    `json:"time,omitempty"`
	Productivity *float64    `json:"productivity,omitempty"`
}

type RecommendedAction struct {
	Action          string `json:"action"`
	Priority        string `json:"priority"`
	ExpectedOutcome string `json:"expected_outcome"`
}

type MetricComparison struct {
	Name      string  `json:"name"`
	Current   float64 `json:"current"`
	Predicted float64 `json:"predicted"`
	Unit      string  `json:"unit"`
}

type AIPrediction struct {
	ID             string              `json:"id"`
	Module         string              `json:"module"`
	Type           PredictionType      `json:"type"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Confidence     float64             `json:"confidence"`
	Impact         Impact              `json:"impact"`
	Probability    float64             `json:"probability"`
	Timeframe      string              `json:"timeframe"`
	Actions        []RecommendedAction `json:"actions"`
	RelatedMetrics []MetricComparison  `json:"related_metrics"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Score is confidence times the impact weight, the ranking key.
func (p AIPrediction) Score() float64 {
	return p.Confidence * p.Impact.Level.Weight()
}

// AIInsight is the compact card form of a prediction shown in insight feeds.
type AIInsight struct {
	ID           string      `json:"id"`
	PredictionID string      `json:"prediction_id"`
	Module       string      `json:"module"`
	Severity     ImpactLevel `json:"severity"`
	Title        string      `json:"title"`
	Message      string      `json:"message"`
	Confidence   float64     `json:"confidence"`
	Actionable   bool        `json:"actionable"`
	Timestamp    time.Time   `json:"timestamp"`
}

type MLModel struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Accuracy    float64   `json:"accuracy"`
	LastTrained time.Time `json:"last_trained"`
	Features    []string  `json:"features"`
}
