package report

import (
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"

	"github.com/ajanata/drivers/ds3231m"
)

const DefaultPublishTimeout = 2 * time.Second

var ErrPublishTimeout = errors.New("report: publish timed out")

// Publisher is the part of mqtt.Client used by MQTT.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Payload is the CBOR body published for each sample.
type Payload struct {
	Iteration int    `cbor:"iter"`
	Field     string `cbor:"field"`
	Register  uint8  `cbor:"reg"`
	Raw       uint8  `cbor:"raw"`
	Value     int    `cbor:"value"`
	Err       string `cbor:"err,omitempty"`
}

func newPayload(s ds3231m.Sample) Payload {
	p := Payload{
		Iteration: s.Iteration,
		Field:     s.Field.String(),
		Register:  s.Register,
		Raw:       s.Raw,
		Value:     s.Value,
	}
	if s.Err != nil {
		p.Err = s.Err.Error()
	}
	return p
}

// DecodePayload is the inverse of what MQTT publishes, for subscribers.
func DecodePayload(b []byte) (Payload, error) {
	var p Payload
	err := cbor.Unmarshal(b, &p)
	return p, err
}

// MQTT publishes each sample to <topic>/<field>. Publishing failures are logged and counted but never stop the
// probe.
type MQTT struct {
	pub     Publisher
	topic   string
	qos     byte
	Timeout time.Duration

	logger   zerolog.Logger
	failures int
}

func NewMQTT(pub Publisher, topic string, qos byte, logger zerolog.Logger) *MQTT {
	return &MQTT{
		pub:     pub,
		topic:   topic,
		qos:     qos,
		Timeout: DefaultPublishTimeout,
		logger:  logger,
	}
}

func (m *MQTT) Report(s ds3231m.Sample) {
	topic := m.topic + "/" + s.Field.String()
	if err := m.publish(topic, newPayload(s)); err != nil {
		m.failures++
		m.logger.Warn().Err(err).Str("topic", topic).Int("iteration", s.Iteration).Msg("publish failed")
	}
}

func (m *MQTT) publish(topic string, p Payload) error {
	b, err := cbor.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode sample: %w", err)
	}
	tok := m.pub.Publish(topic, m.qos, false, b)
	if !tok.WaitTimeout(m.Timeout) {
		return ErrPublishTimeout
	}
	return tok.Error()
}

// Failures returns how many samples could not be published.
func (m *MQTT) Failures() int { return m.failures }

// DialMQTT connects to broker and waits up to timeout for the connection to be acknowledged.
func DialMQTT(broker, clientID string, timeout time.Duration) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return nil, fmt.Errorf("connect to %s: timed out after %s", broker, timeout)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", broker, err)
	}
	return client, nil
}
