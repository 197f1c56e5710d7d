package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "ds3231m.toml")
	content := `
[device]
compatible = "maxim,ds3231m"
bus = "/dev/i2c-1"
reg = 0x68
speed_khz = 400

[probe]
iterations = 10
interval_ms = 250

[mqtt]
broker = "tcp://localhost:1883"
topic = "/lab/rtc/"
qos = 1
`
	c.Assert(os.WriteFile(path, []byte(content), 0o644), qt.IsNil)

	cfg, err := Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Device, qt.Equals, DeviceConfig{
		Compatible: Compatible,
		Bus:        "/dev/i2c-1",
		Address:    0x68,
		SpeedKHz:   400,
	})
	c.Assert(cfg.Probe, qt.Equals, ProbeConfig{Iterations: 10, Interval: 250 * time.Millisecond})
	c.Assert(cfg.MQTT, qt.Equals, MQTTConfig{
		Broker:   "tcp://localhost:1883",
		Topic:    "lab/rtc",
		ClientID: "ds3231m-probe",
		QoS:      1,
	})
	c.Assert(cfg.MQTT.Enabled(), qt.IsTrue)
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	c := qt.New(t)
	cfg, err := Parse("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, Default())
	c.Assert(cfg.MQTT.Enabled(), qt.IsFalse)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  string
	}{
		{"wrong chip", `device.compatible = "nxp,pcf8523"`, `device.compatible "nxp,pcf8523" is not supported, want "maxim,ds3231m"`},
		{"10-bit address", `device.reg = 0x1FF`, `device.reg 0x1ff is not a 7-bit I2C address`},
		{"zero iterations", `probe.iterations = 0`, `probe.iterations must be positive`},
		{"negative interval", `probe.interval_ms = -5`, `probe.interval_ms must be positive`},
		{"bad qos", `mqtt.qos = 3`, `mqtt.qos 3 must be 0, 1 or 2`},
		{"empty topic", "[mqtt]\nbroker = \"tcp://b:1883\"\ntopic = \"/\"", `mqtt.topic is required when mqtt.broker is set`},
		{"unknown key", `device.alarm = true`, `unknown config key "device.alarm"`},
		{"syntax", `device = [`, `(?s)parse ds3231m config: .*`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			_, err := Parse(tt.doc)
			c.Assert(err, qt.ErrorMatches, tt.err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	c := qt.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	c.Assert(err, qt.ErrorMatches, `(?s)load ds3231m config: .*`)
}
