package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
)

// Archive kinds.
const (
	KindSnapshots   = "snapshots"
	KindPredictions = "predictions"
)

var (
	ErrArchiveDisabled = errors.New("archive not enabled")
	ErrUnknownKind     = errors.New("unknown archive kind")
	ErrNotArchived     = errors.New("nothing archived for that day")
)

type ObjectStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ArchivedObject is one listed archive entry with a temporary download URL.
type ArchivedObject struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Archiver writes snapshots and prediction batches to object storage under
// date-partitioned keys.
type Archiver struct {
	store  ObjectStore
	prefix string
}

func NewArchiver(store ObjectStore, prefix string) *Archiver {
	return &Archiver{store: store, prefix: prefix}
}

// ArchiveKey builds "<prefix>/<kind>/YYYY/MM/DD/HHMMSS.json" in UTC.
func ArchiveKey(prefix, kind string, at time.Time) string {
	return fmt.Sprintf("%s/%s/%s.json", prefix, kind, at.UTC().Format("2006/01/02/150405"))
}

func (a *Archiver) Snapshot(ctx context.Context, d *domain.EnhancedRealtimeData) (string, error) {
	if d == nil {
		return "", nil
	}
	return a.put(ctx, KindSnapshots, d.Timestamp, d)
}

func (a *Archiver) Predictions(ctx context.Context, at time.Time, ps []domain.AIPrediction) (string, error) {
	if len(ps) == 0 {
		return "", nil
	}
	return a.put(ctx, KindPredictions, at, ps)
}

func (a *Archiver) put(ctx context.Context, kind string, at time.Time, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", kind, err)
	}
	key := ArchiveKey(a.prefix, kind, at)
	if err := a.store.PutObject(ctx, key, data, "application/json"); err != nil {
		return "", err
	}
	return key, nil
}

// DayPrefix is the key prefix holding every object of kind archived on the
// UTC day of at.
func DayPrefix(prefix, kind string, at time.Time) string {
	return fmt.Sprintf("%s/%s/%s/", prefix, kind, at.UTC().Format("2006/01/02"))
}

func (a *Archiver) Enabled() bool { return a != nil && a.store != nil }

// List returns the day's objects of kind, oldest first, each with a download
// URL valid for ttl.
func (a *Archiver) List(ctx context.Context, kind string, day time.Time, ttl time.Duration) ([]ArchivedObject, error) {
	keys, err := a.keys(ctx, kind, day)
	if err != nil {
		return nil, err
	}
	out := make([]ArchivedObject, 0, len(keys))
	for _, k := range keys {
		url, err := a.store.PresignGet(ctx, k, ttl)
		if err != nil {
			return nil, err
		}
		out = append(out, ArchivedObject{Key: k, URL: url})
	}
	return out, nil
}

// LatestSnapshot loads the newest snapshot archived on day.
func (a *Archiver) LatestSnapshot(ctx context.Context, day time.Time) (*domain.EnhancedRealtimeData, error) {
	keys, err := a.keys(ctx, KindSnapshots, day)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, ErrNotArchived
	}
	data, err := a.store.GetObject(ctx, keys[len(keys)-1])
	if err != nil {
		return nil, err
	}
	var d domain.EnhancedRealtimeData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &d, nil
}

func (a *Archiver) keys(ctx context.Context, kind string, day time.Time) ([]string, error) {
	if !a.Enabled() {
		return nil, ErrArchiveDisabled
	}
	if kind != KindSnapshots && kind != KindPredictions {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	keys, err := a.store.ListKeys(ctx, DayPrefix(a.prefix, kind, day))
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}
