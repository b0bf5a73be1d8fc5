package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/bessplan/core/engine"
	"github.com/kilianp07/bessplan/core/model"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakeClient struct {
	connected  bool
	connectErr error
	published  []publishedMsg
}

type publishedMsg struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Connect() paho.Token {
	if c.connectErr == nil {
		c.connected = true
	}
	return &fakeToken{err: c.connectErr}
}

func (c *fakeClient) Disconnect(uint) { c.connected = false }

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.published = append(c.published, publishedMsg{
		topic:    topic,
		qos:      qos,
		retained: retained,
		payload:  payload.([]byte),
	})
	return &fakeToken{}
}

func withFakeClient(t *testing.T, cli *fakeClient) {
	t.Helper()
	orig := newMQTTClient
	newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return cli }
	t.Cleanup(func() { newMQTTClient = orig })
}

func TestPlanPublisherPublish(t *testing.T) {
	cli := &fakeClient{}
	withFakeClient(t, cli)

	pub, err := NewPlanPublisher(Config{
		Broker: "tcp://localhost:1883",
		Topic:  "plans/site-1",
		QoS:    1,
		Retain: true,
	})
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	res := &engine.Result{
		RunID:     "run-1",
		TimeIndex: model.NewTimeIndex(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2),
		Summary:   map[string]float64{engine.KeyNetCost: 12.5},
		Series:    map[string][]float64{engine.SeriesExport: {1, 2}},
	}
	if err := pub.Publish(res); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(cli.published) != 1 {
		t.Fatalf("expected one message, got %d", len(cli.published))
	}
	msg := cli.published[0]
	if msg.topic != "plans/site-1" || msg.qos != 1 || !msg.retained {
		t.Fatalf("unexpected message envelope %+v", msg)
	}
	var decoded planMessage
	if err := json.Unmarshal(msg.payload, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.Summary[engine.KeyNetCost] != 12.5 {
		t.Fatalf("payload lost data: %+v", decoded)
	}

	pub.Close()
	if cli.connected {
		t.Fatalf("close did not disconnect")
	}
}

func TestPlanPublisherConnectError(t *testing.T) {
	withFakeClient(t, &fakeClient{connectErr: errors.New("broker down")})
	if _, err := NewPlanPublisher(Config{Broker: "tcp://localhost:1883"}); err == nil {
		t.Fatalf("expected connect error")
	}
}

func TestConfigEnabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Fatalf("empty config should be disabled")
	}
	if !(Config{Broker: "tcp://x"}).Enabled() {
		t.Fatalf("configured broker should enable publishing")
	}
}
