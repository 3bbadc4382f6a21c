package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
)

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

type snapshotRow struct {
	ID      int64     `db:"id"`
	TakenAt time.Time `db:"taken_at"`
	Weather string    `db:"weather"`
	Payload []byte    `db:"payload"`
}

type predictionRow struct {
	ID          string    `db:"id"`
	Module      string    `db:"module"`
	Type        string    `db:"type"`
	Title       string    `db:"title"`
	Impact      string    `db:"impact"`
	Confidence  float64   `db:"confidence"`
	Probability float64   `db:"probability"`
	CreatedAt   time.Time `db:"created_at"`
	Payload     []byte    `db:"payload"`
}

func (r *Repos) InsertSnapshot(d *domain.EnhancedRealtimeData) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = r.db.NamedExec(`INSERT INTO snapshots(taken_at, weather, payload) VALUES (:taken_at, :weather, :payload)`,
		snapshotRow{TakenAt: d.Timestamp, Weather: string(d.Conditions.Weather.Type), Payload: payload})
	return err
}

// LatestSnapshot returns nil, nil when no snapshot has been stored.
func (r *Repos) LatestSnapshot() (*domain.EnhancedRealtimeData, error) {
	var row snapshotRow
	err := r.db.Get(&row, `SELECT id, taken_at, weather, payload FROM snapshots ORDER BY taken_at DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d domain.EnhancedRealtimeData
	if err := json.Unmarshal(row.Payload, &d); err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", row.ID, err)
	}
	return &d, nil
}

// InsertPredictions stores a batch in one transaction. Re-inserting an id is
// a no-op.
func (r *Repos) InsertPredictions(ps []domain.AIPrediction) error {
	if len(ps) == 0 {
		return nil
	}
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, p := range ps {
		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode prediction %s: %w", p.ID, err)
		}
		_, err = tx.NamedExec(`INSERT INTO predictions(id, module, type, title, impact, confidence, probability, created_at, payload)
			VALUES (:id, :module, :type, :title, :impact, :confidence, :probability, :created_at, :payload)
			ON CONFLICT (id) DO NOTHING`,
			predictionRow{
				ID:          p.ID,
				Module:      p.Module,
				Type:        string(p.Type),
				Title:       p.Title,
				Impact:      string(p.Impact.Level),
				Confidence:  p.Confidence,
				Probability: p.Probability,
				CreatedAt:   p.CreatedAt,
				Payload:     payload,
			})
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentPredictions returns up to limit predictions, newest first.
func (r *Repos) RecentPredictions(limit int) ([]domain.AIPrediction, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []predictionRow
	err := r.db.Select(&rows, `SELECT id, module, type, title, impact, confidence, probability, created_at, payload
		FROM predictions ORDER BY created_at DESC, confidence DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AIPrediction, 0, len(rows))
	for _, row := range rows {
		var p domain.AIPrediction
		if err := json.Unmarshal(row.Payload, &p); err != nil {
			return nil, fmt.Errorf("decode prediction %s: %w", row.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}
