// Package broker fans feed updates out to MQTT topics.
package broker

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/realtime"
)

// Client is the part of mqtt.Client the publisher uses.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Connect dials the broker with a client id unique to this process.
func Connect(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	return client, nil
}

func SnapshotTopic(prefix string) string    { return prefix + "/snapshot" }
func PredictionsTopic(prefix string) string { return prefix + "/predictions" }
func StatusTopic(prefix string) string      { return prefix + "/status" }
func EventTopic(prefix, kind string) string { return prefix + "/events/" + kind }

// Suffix strips prefix and the separator from topic.
func Suffix(prefix, topic string) string {
	return strings.TrimPrefix(strings.TrimPrefix(topic, prefix), "/")
}

type Publisher struct {
	client  Client
	prefix  string
	timeout time.Duration
}

func NewPublisher(c Client, prefix string) *Publisher {
	return &Publisher{client: c, prefix: strings.TrimSuffix(prefix, "/"), timeout: 5 * time.Second}
}

// Publish JSON-encodes v and waits for the broker to accept it.
func (p *Publisher) Publish(topic string, v any, retained bool) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", topic, err)
	}
	token := p.client.Publish(topic, 1, retained, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish %s: timed out after %s", topic, p.timeout)
	}
	return token.Error()
}

type status struct {
	Connected  bool            `json:"is_connected"`
	Status     realtime.Status `json:"status"`
	LastUpdate time.Time       `json:"last_update"`
}

// Forward publishes whatever u changed. It is meant to be passed to
// realtime.Feed.Subscribe.
func (p *Publisher) Forward(u realtime.Update) {
	s := u.State
	var err error
	switch u.Kind {
	case realtime.KindSnapshot:
		err = p.snapshot(s)
	case realtime.KindEvents:
		err = p.events(s, "supply_chain", "financial", "workforce", "quality")
	case realtime.KindTelemetry:
		err = p.events(s, "telemetry")
	case realtime.KindInsights:
		err = p.predictions(s)
	case realtime.KindConnection:
		err = p.Publish(StatusTopic(p.prefix), status{s.Connected, s.Status, s.LastUpdate}, true)
	case realtime.KindRefresh:
		if err = p.snapshot(s); err == nil {
			if err = p.events(s, realtime.EventKinds...); err == nil {
				err = p.predictions(s)
			}
		}
	}
	if err != nil {
		log.Error().Err(err).Str("kind", string(u.Kind)).Msg("mqtt forward failed")
	}
}

func (p *Publisher) snapshot(s *realtime.State) error {
	if s.Data == nil {
		return nil
	}
	return p.Publish(SnapshotTopic(p.prefix), s.Data, true)
}

func (p *Publisher) predictions(s *realtime.State) error {
	return p.Publish(PredictionsTopic(p.prefix), s.Predictions, true)
}

func (p *Publisher) events(s *realtime.State, kinds ...string) error {
	for _, k := range kinds {
		buf, ok := s.Events.ByKind(k)
		if !ok {
			continue
		}
		if err := p.Publish(EventTopic(p.prefix, k), buf, true); err != nil {
			return err
		}
	}
	return nil
}
