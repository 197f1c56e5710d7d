// Command ds3231m-console is an interactive shell for reading and setting the time registers of a DS3231M attached
// to a host I2C bus.
package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/ajanata/drivers/ds3231m"
	"github.com/ajanata/drivers/hostbus"
	"github.com/ajanata/drivers/internal/config"
	"github.com/ajanata/drivers/internal/logging"
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem("read"),
	readline.PcItem("state"),
	readline.PcItem("set",
		readline.PcItem("seconds"),
		readline.PcItem("minutes"),
		readline.PcItem("hours"),
		readline.PcItem("day"),
		readline.PcItem("date"),
		readline.PcItem("month"),
	),
	readline.PcItem("reg"),
	readline.PcItem("probe"),
	readline.PcItem("help"),
	readline.PcItem("quit"),
)

func main() {
	configPath := flag.String("config", "ds3231m.toml", "device description")
	flag.Parse()

	logger := logging.Init("ds3231m-console")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	bus, err := hostbus.Open(hostbus.Config{
		Name:  cfg.Device.Bus,
		Speed: physic.Frequency(cfg.Device.SpeedKHz) * physic.KiloHertz,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open bus")
	}
	defer bus.Close()

	dev := ds3231m.New(bus)
	if err := dev.Configure(ds3231m.Config{Address: cfg.Device.Address}); err != nil {
		log.Fatal().Err(err).Msg("failed to configure device")
	}
	defer dev.Detach()
	// the hour mode is only known after a read
	if err := dev.Refresh(); err != nil {
		logger.Warn().Err(err).Msg("initial read failed, hour mode unknown")
	}

	home, _ := os.UserHomeDir()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "ds3231m> ",
		HistoryFile:  filepath.Join(home, ".ds3231m_history"),
		AutoComplete: completer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start readline")
	}
	defer rl.Close()

	c := &console{
		dev: dev,
		out: rl.Stdout(),
		probe: ds3231m.ProbeConfig{
			Iterations: cfg.Probe.Iterations,
			Interval:   cfg.Probe.Interval,
		},
	}
	c.exec("state")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			logger.Error().Err(err).Msg("read input")
			return
		}
		err = c.exec(line)
		if errors.Is(err, errQuit) {
			return
		}
		if err != nil {
			logger.Error().Err(err).Msg(line)
		}
	}
}
