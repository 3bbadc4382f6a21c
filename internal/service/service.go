package service

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/broker"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/repository"
)

type Services struct {
	Repos    *repository.Repos
	Recorder *Recorder
}

func New(db *sqlx.DB, topicPrefix string) *Services {
	repos := repository.New(db)
	return &Services{
		Repos:    repos,
		Recorder: NewRecorder(repos, topicPrefix),
	}
}

// HistoryStore is the persistence the recorder writes to.
type HistoryStore interface {
	InsertSnapshot(d *domain.EnhancedRealtimeData) error
	InsertPredictions(ps []domain.AIPrediction) error
}

// Recorder persists snapshots and predictions received over MQTT.
type Recorder struct {
	store  HistoryStore
	prefix string
}

func NewRecorder(store HistoryStore, topicPrefix string) *Recorder {
	return &Recorder{store: store, prefix: topicPrefix}
}

// FromMQTT decodes a payload by topic and stores it. Topics it does not
// record are ignored.
func (r *Recorder) FromMQTT(topic string, payload []byte) error {
	switch broker.Suffix(r.prefix, topic) {
	case "snapshot":
		var d domain.EnhancedRealtimeData
		if err := json.Unmarshal(payload, &d); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		return r.store.InsertSnapshot(&d)
	case "predictions":
		var ps []domain.AIPrediction
		if err := json.Unmarshal(payload, &ps); err != nil {
			return fmt.Errorf("decode predictions: %w", err)
		}
		return r.store.InsertPredictions(ps)
	}
	return nil
}
