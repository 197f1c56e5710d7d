// Package config loads the TOML description of a DS3231M installation: which bus and address the chip sits on, how
// the bring-up probe runs and where its samples are published.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ajanata/drivers/ds3231m"
)

// Compatible is the only device the loader accepts.
const Compatible = "maxim,ds3231m"

type Config struct {
	Device DeviceConfig
	Probe  ProbeConfig
	MQTT   MQTTConfig
}

type DeviceConfig struct {
	Compatible string
	Bus        string
	Address    uint16
	SpeedKHz   int
}

type ProbeConfig struct {
	Iterations int
	Interval   time.Duration
}

// MQTTConfig is optional; an empty Broker disables publishing.
type MQTTConfig struct {
	Broker   string
	Topic    string
	ClientID string
	QoS      byte
}

// Enabled reports whether samples should be published.
func (m MQTTConfig) Enabled() bool { return m.Broker != "" }

// ds3231m config.toml key mapping
type fileConfig struct {
	Device struct {
		Compatible string `toml:"compatible"`
		Bus        string `toml:"bus"`
		Reg        int    `toml:"reg"`
		SpeedKHz   int    `toml:"speed_khz"`
	} `toml:"device"`
	Probe struct {
		Iterations int `toml:"iterations"`
		IntervalMS int `toml:"interval_ms"`
	} `toml:"probe"`
	MQTT struct {
		Broker   string `toml:"broker"`
		Topic    string `toml:"topic"`
		ClientID string `toml:"client_id"`
		QoS      int    `toml:"qos"`
	} `toml:"mqtt"`
}

func Default() Config {
	return Config{
		Device: DeviceConfig{
			Compatible: Compatible,
			Address:    ds3231m.Address,
		},
		Probe: ProbeConfig{
			Iterations: ds3231m.DefaultProbeIterations,
			Interval:   ds3231m.DefaultProbeInterval,
		},
		MQTT: MQTTConfig{
			Topic:    "ds3231m/probe",
			ClientID: "ds3231m-probe",
		},
	}
}

// Load reads path and overlays every key it defines on Default.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load ds3231m config: %w", err)
	}
	return fromFile(raw, meta)
}

// Parse is Load for an in-memory document.
func Parse(doc string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(doc, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse ds3231m config: %w", err)
	}
	return fromFile(raw, meta)
}

func fromFile(raw fileConfig, meta toml.MetaData) (Config, error) {
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undec[0].String())
	}

	cfg := Default()
	if meta.IsDefined("device", "compatible") {
		cfg.Device.Compatible = strings.TrimSpace(raw.Device.Compatible)
	}
	if meta.IsDefined("device", "bus") {
		cfg.Device.Bus = strings.TrimSpace(raw.Device.Bus)
	}
	if meta.IsDefined("device", "reg") {
		if raw.Device.Reg <= 0 || raw.Device.Reg > 0x7F {
			return Config{}, fmt.Errorf("device.reg 0x%x is not a 7-bit I2C address", raw.Device.Reg)
		}
		cfg.Device.Address = uint16(raw.Device.Reg)
	}
	if meta.IsDefined("device", "speed_khz") {
		cfg.Device.SpeedKHz = raw.Device.SpeedKHz
	}
	if meta.IsDefined("probe", "iterations") {
		cfg.Probe.Iterations = raw.Probe.Iterations
	}
	if meta.IsDefined("probe", "interval_ms") {
		cfg.Probe.Interval = time.Duration(raw.Probe.IntervalMS) * time.Millisecond
	}
	if meta.IsDefined("mqtt", "broker") {
		cfg.MQTT.Broker = strings.TrimSpace(raw.MQTT.Broker)
	}
	if meta.IsDefined("mqtt", "topic") {
		cfg.MQTT.Topic = strings.Trim(strings.TrimSpace(raw.MQTT.Topic), "/")
	}
	if meta.IsDefined("mqtt", "client_id") {
		cfg.MQTT.ClientID = strings.TrimSpace(raw.MQTT.ClientID)
	}
	if meta.IsDefined("mqtt", "qos") {
		if raw.MQTT.QoS < 0 || raw.MQTT.QoS > 2 {
			return Config{}, fmt.Errorf("mqtt.qos %d must be 0, 1 or 2", raw.MQTT.QoS)
		}
		cfg.MQTT.QoS = byte(raw.MQTT.QoS)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.Device.Compatible != Compatible {
		return fmt.Errorf("device.compatible %q is not supported, want %q", cfg.Device.Compatible, Compatible)
	}
	if cfg.Device.SpeedKHz < 0 {
		return errors.New("device.speed_khz must not be negative")
	}
	if cfg.Probe.Iterations <= 0 {
		return errors.New("probe.iterations must be positive")
	}
	if cfg.Probe.Interval <= 0 {
		return errors.New("probe.interval_ms must be positive")
	}
	if cfg.MQTT.Enabled() && cfg.MQTT.Topic == "" {
		return errors.New("mqtt.topic is required when mqtt.broker is set")
	}
	return nil
}
