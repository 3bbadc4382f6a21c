package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/cloud"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
)

var ErrAlertsDisabled = errors.New("cloud alerting not enabled")

type Notifier interface {
	Publish(ctx context.Context, subject, message string) error
}

type AlertStore interface {
	PutAlert(ctx context.Context, a cloud.Alert) error
	ListAlerts(ctx context.Context, module string, limit int) ([]cloud.Alert, error)
	AcknowledgeAlert(ctx context.Context, alertID string) error
}

// DedupeWindow is how long a raised prediction id is remembered in memory.
// Older ids fall back to the store's conditional write.
const DedupeWindow = 6 * time.Hour

// AlertService raises an alert for every high or critical prediction at or
// above the confidence floor. Each prediction id alerts at most once.
type AlertService struct {
	store         AlertStore
	notify        Notifier
	minConfidence float64
	now           func() time.Time

	mu      sync.Mutex
	sent    map[string]time.Time
	pending map[string]struct{} // stored, notification not yet delivered
}

// NewAlertService accepts nil store or notifier; the service is then
// disabled.
func NewAlertService(store AlertStore, notify Notifier, minConfidence float64) *AlertService {
	return &AlertService{
		store:         store,
		notify:        notify,
		minConfidence: minConfidence,
		now:           time.Now,
		sent:          map[string]time.Time{},
		pending:       map[string]struct{}{},
	}
}

func (s *AlertService) Enabled() bool { return s != nil && s.store != nil && s.notify != nil }

func (s *AlertService) qualifies(p domain.AIPrediction) bool {
	if p.Confidence < s.minConfidence {
		return false
	}
	return p.Impact.Level == domain.ImpactCritical || p.Impact.Level == domain.ImpactHigh
}

// Process records and publishes alerts for ps and returns how many were
// raised.
func (s *AlertService) Process(ctx context.Context, ps []domain.AIPrediction) (int, error) {
	if !s.Enabled() {
		return 0, ErrAlertsDisabled
	}
	s.prune()
	raised := 0
	for _, p := range ps {
		if !s.qualifies(p) || s.seen(p.ID) {
			continue
		}
		a := alertFor(p)
		err := s.store.PutAlert(ctx, a)
		switch {
		case errors.Is(err, cloud.ErrAlertExists):
			if !s.isPending(p.ID) {
				s.mark(p.ID)
				continue
			}
		case err != nil:
			return raised, fmt.Errorf("store alert %s: %w", a.AlertID, err)
		default:
			s.setPending(p.ID)
		}
		if err := s.notify.Publish(ctx, subjectFor(p), a.Message); err != nil {
			return raised, fmt.Errorf("notify alert %s: %w", a.AlertID, err)
		}
		s.mark(p.ID)
		raised++
		log.Info().Str("alert", a.AlertID).Str("severity", a.Severity).Msg("alert raised")
	}
	return raised, nil
}

func (s *AlertService) List(ctx context.Context, module string, limit int) ([]cloud.Alert, error) {
	if !s.Enabled() {
		return nil, ErrAlertsDisabled
	}
	return s.store.ListAlerts(ctx, module, limit)
}

func (s *AlertService) Acknowledge(ctx context.Context, alertID string) error {
	if !s.Enabled() {
		return ErrAlertsDisabled
	}
	return s.store.AcknowledgeAlert(ctx, alertID)
}

func (s *AlertService) seen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sent[id]
	return ok
}

// mark records id as delivered and clears its pending flag.
func (s *AlertService) mark(id string) {
	s.mu.Lock()
	s.sent[id] = s.now()
	delete(s.pending, id)
	s.mu.Unlock()
}

func (s *AlertService) setPending(id string) {
	s.mu.Lock()
	s.pending[id] = struct{}{}
	s.mu.Unlock()
}

func (s *AlertService) isPending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

// prune forgets delivered ids older than DedupeWindow.
func (s *AlertService) prune() {
	cutoff := s.now().Add(-DedupeWindow)
	s.mu.Lock()
	for id, at := range s.sent {
		if at.Before(cutoff) {
			delete(s.sent, id)
		}
	}
	s.mu.Unlock()
}

// Remembered reports how many delivered ids are held for deduplication.
func (s *AlertService) Remembered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func alertFor(p domain.AIPrediction) cloud.Alert {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s\n\n", p.Title, p.Description)
	fmt.Fprintf(&b, "Module: %s\nSeverity: %s\nConfidence: %.0f%%\nProbability: %.0f%%\nTimeframe: %s\n",
		p.Module, p.Impact.Level, p.Confidence, p.Probability, p.Timeframe)
	if len(p.Actions) > 0 {
		b.WriteString("\nRecommended actions:\n")
		for i, a := range p.Actions {
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, a.Priority, a.Action)
		}
	}
	return cloud.Alert{
		AlertID:      "alert-" + p.ID,
		PredictionID: p.ID,
		Module:       p.Module,
		Severity:     string(p.Impact.Level),
		Title:        p.Title,
		Message:      b.String(),
		Confidence:   p.Confidence,
		CreatedAt:    p.CreatedAt.Unix(),
	}
}

func subjectFor(p domain.AIPrediction) string {
	return fmt.Sprintf("Construction %s alert: %s", strings.ToUpper(string(p.Impact.Level)), p.Title)
}
