// Package mqtt publishes solved dispatch plans to an MQTT broker so that
// downstream consumers (SCADA bridges, dashboards) can pick them up.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/bessplan/core/engine"
	"github.com/kilianp07/bessplan/infra/logger"
)

// Config defines the connection parameters for the plan publisher.
type Config struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
	Retain   bool   `json:"retain"`
}

// Enabled reports whether a broker is configured.
func (c Config) Enabled() bool { return c.Broker != "" }

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// newMQTTClient builds the underlying Paho client. Tests override it.
var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PlanPublisher pushes dispatch plans over MQTT.
type PlanPublisher struct {
	cli    pahoClient
	topic  string
	qos    byte
	retain bool
	log    logger.Logger
}

// planMessage is the wire format of a published plan.
type planMessage struct {
	RunID     string               `json:"run_id"`
	Start     time.Time            `json:"start"`
	StepHours float64              `json:"step_hours"`
	Summary   map[string]float64   `json:"summary"`
	Series    map[string][]float64 `json:"series"`
	Synthetic bool                 `json:"synthetic"`
}

// NewPlanPublisher connects to the broker and returns a ready publisher.
func NewPlanPublisher(cfg Config) (*PlanPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	cli := newMQTTClient(opts)
	tok := cli.Connect()
	if tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tok.Error())
	}
	return &PlanPublisher{
		cli:    cli,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		retain: cfg.Retain,
		log:    logger.New("plan-publisher"),
	}, nil
}

// Publish serializes the result and pushes it to the configured topic.
func (p *PlanPublisher) Publish(res *engine.Result) error {
	msg := planMessage{
		RunID:     res.RunID,
		Start:     res.TimeIndex.Start,
		StepHours: res.TimeIndex.StepHours,
		Summary:   res.Summary,
		Series:    res.Series,
		Synthetic: res.SyntheticProfile,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	tok := p.cli.Publish(p.topic, p.qos, p.retain, payload)
	if tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("publish plan: %w", tok.Error())
	}
	p.log.Infof("published plan %s to %s", res.RunID, p.topic)
	return nil
}

// Close disconnects from the broker.
func (p *PlanPublisher) Close() {
	if p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
