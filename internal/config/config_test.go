package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFeedOptionsDefaults(t *testing.T) {
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	o := FeedOptions()
	if o.Intervals.Snapshot != 5*time.Second || o.Intervals.Insights != time.Minute || o.Intervals.Reconnect != 3*time.Second {
		t.Fatalf("unexpected intervals %+v", o.Intervals)
	}
	if o.DisconnectProbability != 0.05 || o.EventBatch != 3 || o.TelemetryBatch != 5 {
		t.Fatalf("unexpected options %+v", o)
	}
}

func TestFeedOptionsFromEnv(t *testing.T) {
	t.Setenv("SNAPSHOT_INTERVAL", "250ms")
	t.Setenv("EVENT_INTERVAL", "0s")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("DISCONNECT_PROBABILITY", "0")
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	o := FeedOptions()
	if o.Intervals.Snapshot != 250*time.Millisecond {
		t.Fatalf("snapshot=%v", o.Intervals.Snapshot)
	}
	if o.Intervals.Events != 30*time.Second {
		t.Fatalf("zero interval should fall back, got %v", o.Intervals.Events)
	}
	if o.Seed != 42 || o.DisconnectProbability != 0 {
		t.Fatalf("seed=%d p=%v", o.Seed, o.DisconnectProbability)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		env  string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"shouting", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.env)
		if err := Load(); err != nil {
			t.Fatal(err)
		}
		if got := LogLevel(); got != tt.want {
			t.Fatalf("LOG_LEVEL=%s got %v want %v", tt.env, got, tt.want)
		}
	}
}
