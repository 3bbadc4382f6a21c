// Package insight derives ranked, rule-based predictions and insight cards
// from a snapshot.
package insight

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
)

// Engine runs a fixed set of evaluators. The zero value is not usable; use
// NewEngine.
type Engine struct {
	rules []Evaluator
}

// NewEngine uses Rules when none are given.
func NewEngine(rules ...Evaluator) *Engine {
	if len(rules) == 0 {
		rules = Rules
	}
	return &Engine{rules: rules}
}

// Predict evaluates every rule against d and returns the matches ranked by
// confidence times impact weight, highest first. Equal scores keep rule
// order. The output depends only on d.
func (e *Engine) Predict(d *domain.EnhancedRealtimeData) []domain.AIPrediction {
	out := []domain.AIPrediction{}
	if d == nil {
		return out
	}
	for _, rule := range e.rules {
		p, ok := rule.Eval(d)
		if !ok {
			continue
		}
		p.ID = predictionID(rule.Name, d.Timestamp)
		if p.Module == "" {
			p.Module = rule.Name
		}
		p.CreatedAt = d.Timestamp
		out = append(out, p)
	}
	Rank(out)
	return out
}

// Rank sorts predictions in place by score, descending, keeping input order
// on ties.
func Rank(ps []domain.AIPrediction) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].Score() > ps[j].Score()
	})
}

// GenerateInsights summarises each matched prediction as an insight card.
func (e *Engine) GenerateInsights(d *domain.EnhancedRealtimeData) []domain.AIInsight {
	return Insights(e.Predict(d))
}

// Insights maps ranked predictions to cards, preserving order.
func Insights(ps []domain.AIPrediction) []domain.AIInsight {
	out := make([]domain.AIInsight, 0, len(ps))
	for _, p := range ps {
		short := p.ID
		if len(short) > 8 {
			short = short[:8]
		}
		msg := p.Description
		if len(p.Actions) > 0 {
			msg += " Recommended: " + p.Actions[0].Action + "."
		}
		out = append(out, domain.AIInsight{
			ID:           "INS-" + short,
			PredictionID: p.ID,
			Module:       p.Module,
			Severity:     p.Impact.Level,
			Title:        p.Title,
			Message:      msg,
			Confidence:   p.Confidence,
			Actionable:   len(p.Actions) > 0,
			Timestamp:    p.CreatedAt,
		})
	}
	return out
}

var idSpace = uuid.MustParse("6f1c2b0e-3d7a-5c5e-9a41-2f8e6b7d4c10")

func predictionID(rule string, at time.Time) string {
	return uuid.NewSHA1(idSpace, []byte(rule+"|"+at.UTC().Format(time.RFC3339Nano))).String()
}
