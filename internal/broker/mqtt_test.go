package broker

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/realtime"
)

type doneToken struct{ err error }

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t doneToken) Error() error { return t.err }

type fakeClient struct {
	mu       sync.Mutex
	err      error
	payloads map[string][]byte
}

func (c *fakeClient) Publish(topic string, _ byte, _ bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.payloads == nil {
		c.payloads = map[string][]byte{}
	}
	c.payloads[topic] = payload.([]byte)
	return doneToken{err: c.err}
}

func (c *fakeClient) topics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for k := range c.payloads {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestTopicNames(t *testing.T) {
	if got := EventTopic("construction", "financial"); got != "construction/events/financial" {
		t.Fatalf("event topic=%q", got)
	}
	if got := Suffix("construction", SnapshotTopic("construction")); got != "snapshot" {
		t.Fatalf("suffix=%q", got)
	}
}

func testState() *realtime.State {
	return &realtime.State{
		Data:        &domain.EnhancedRealtimeData{Timestamp: time.Date(2025, 7, 3, 9, 0, 0, 0, time.UTC)},
		Predictions: []domain.AIPrediction{{ID: "p1", Title: "Storm"}},
		Connected:   true,
		Status:      realtime.StatusPolling,
	}
}

func TestForwardRefreshPublishesEverything(t *testing.T) {
	c := &fakeClient{}
	NewPublisher(c, "site/").Forward(realtime.Update{Kind: realtime.KindRefresh, State: testState()})
	got := c.topics()
	want := 2 + len(realtime.EventKinds)
	if len(got) != want {
		t.Fatalf("topics=%v want %d", got, want)
	}
	var ps []domain.AIPrediction
	if err := json.Unmarshal(c.payloads["site/predictions"], &ps); err != nil || len(ps) != 1 || ps[0].ID != "p1" {
		t.Fatalf("predictions payload=%s err=%v", c.payloads["site/predictions"], err)
	}
}

func TestForwardByKind(t *testing.T) {
	tests := []struct {
		kind realtime.Kind
		want []string
	}{
		{realtime.KindSnapshot, []string{"c/snapshot"}},
		{realtime.KindTelemetry, []string{"c/events/telemetry"}},
		{realtime.KindInsights, []string{"c/predictions"}},
		{realtime.KindConnection, []string{"c/status"}},
		{realtime.KindEvents, []string{"c/events/financial", "c/events/quality", "c/events/supply_chain", "c/events/workforce"}},
	}
	for _, tt := range tests {
		c := &fakeClient{}
		NewPublisher(c, "c").Forward(realtime.Update{Kind: tt.kind, State: testState()})
		got := c.topics()
		if len(got) != len(tt.want) {
			t.Fatalf("%s: topics=%v want %v", tt.kind, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%s: topics=%v want %v", tt.kind, got, tt.want)
			}
		}
	}
}

func TestPublishReturnsBrokerError(t *testing.T) {
	c := &fakeClient{err: errors.New("not authorized")}
	if err := NewPublisher(c, "c").Publish("c/x", 1, false); err == nil {
		t.Fatal("expected error")
	}
}
