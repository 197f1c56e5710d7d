// Command ds3231m-probe attaches to a DS3231M described by a TOML file, samples its time registers for a fixed number
// of iterations and logs every value, optionally publishing the samples over MQTT. It is meant for board bring-up.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"

	"github.com/ajanata/drivers/ds3231m"
	"github.com/ajanata/drivers/hostbus"
	"github.com/ajanata/drivers/internal/config"
	"github.com/ajanata/drivers/internal/logging"
	"github.com/ajanata/drivers/report"
)

func main() {
	configPath := flag.String("config", "ds3231m.toml", "device description")
	iterations := flag.Int("n", 0, "number of iterations, overrides probe.iterations")
	flag.Parse()

	logger := logging.Init("ds3231m-probe")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *iterations > 0 {
		cfg.Probe.Iterations = *iterations
	}
	logger.Info().Str("path", *configPath).Str("bus", cfg.Device.Bus).Msg("loaded config")

	bus, err := hostbus.Open(hostbus.Config{
		Name:  cfg.Device.Bus,
		Speed: physic.Frequency(cfg.Device.SpeedKHz) * physic.KiloHertz,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open bus")
	}
	defer bus.Close()

	var extra []ds3231m.Reporter
	if cfg.MQTT.Enabled() {
		client, err := report.DialMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientID, 5*time.Second)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to broker")
		}
		defer client.Disconnect(250)
		pub := report.NewMQTT(client, cfg.MQTT.Topic, cfg.MQTT.QoS, logger)
		defer func() {
			if n := pub.Failures(); n > 0 {
				logger.Warn().Int("failures", n).Msg("some samples were not published")
			}
		}()
		extra = append(extra, pub)
	}

	if err := probe(bus, cfg, logger, extra...); err != nil {
		logger.Error().Err(err).Msg("probe failed")
	}
}

// probe runs the sampling loop against the device described by cfg on bus.
func probe(bus drivers.I2C, cfg config.Config, logger zerolog.Logger, extra ...ds3231m.Reporter) error {
	dev := ds3231m.New(bus)
	if err := dev.Configure(ds3231m.Config{Address: cfg.Device.Address}); err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	defer dev.Detach()

	logger.Info().
		Hex("addr", []byte{byte(dev.Address)}).
		Int("iterations", cfg.Probe.Iterations).
		Dur("interval", cfg.Probe.Interval).
		Msg("probe started")

	reporters := append([]ds3231m.Reporter{report.NewLog(logger)}, extra...)
	res, err := dev.Probe(ds3231m.ProbeConfig{
		Iterations: cfg.Probe.Iterations,
		Interval:   cfg.Probe.Interval,
	}, report.Multi(reporters...))
	if err != nil {
		return err
	}

	st := dev.State()
	ev := logger.Info()
	if res.Failures > 0 {
		ev = logger.Warn()
	}
	ev.Int("iterations", res.Iterations).
		Int("reads", res.Reads).
		Int("failures", res.Failures).
		Int("committed", res.Committed).
		Str("time", formatState(st)).
		Str("mode", st.Mode.String()).
		Msg("probe done")
	return nil
}

func formatState(s ds3231m.State) string {
	t := fmt.Sprintf("%s %02d %02d:%02d:%02d", s.Day, s.Date, s.Hours, s.Minutes, s.Seconds)
	if s.Mode == ds3231m.TwelveHour {
		if s.PM {
			return t + " PM"
		}
		return t + " AM"
	}
	return t
}
