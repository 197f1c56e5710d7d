package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/ajanata/drivers/ds3231m"
	"github.com/ajanata/drivers/report"
)

var errQuit = errors.New("quit")

const usage = `commands:
  read                     refresh the cached time from the chip and print it
  state                    print the cached time without touching the bus
  set <field> <value>      write seconds, minutes, hours, day, date or month
  reg <addr>               print a raw register, e.g. reg 0xF0
  probe [iterations]       run the sampling loop
  help                     show this text
  quit                     leave the console
`

type console struct {
	dev   *ds3231m.Device
	out   io.Writer
	probe ds3231m.ProbeConfig
	// reporter receives probe samples in addition to the console output
	reporter ds3231m.Reporter
}

// exec runs one input line. It returns errQuit when the console should exit.
func (c *console) exec(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return nil
	}
	switch cmd, args := strings.ToLower(args[0]), args[1:]; cmd {
	case "help", "?":
		fmt.Fprint(c.out, usage)
	case "quit", "exit":
		return errQuit
	case "read":
		if err := c.dev.Refresh(); err != nil {
			return err
		}
		c.printState()
	case "state":
		c.printState()
	case "set":
		return c.set(args)
	case "reg":
		return c.reg(args)
	case "probe":
		return c.runProbe(args)
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (c *console) printState() {
	s := c.dev.State()
	fmt.Fprintf(c.out, "%s %02d %02d:%02d:%02d", s.Day, s.Date, s.Hours, s.Minutes, s.Seconds)
	if s.Mode == ds3231m.TwelveHour {
		if s.PM {
			fmt.Fprint(c.out, " PM")
		} else {
			fmt.Fprint(c.out, " AM")
		}
	}
	fmt.Fprintf(c.out, " (%s)\n", s.Mode)
}

func (c *console) set(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <field> <value>")
	}
	f, ok := ds3231m.ParseField(args[0])
	if !ok {
		return fmt.Errorf("unknown field %q", args[0])
	}
	v, err := parseValue(f, args[1])
	if err != nil {
		return err
	}
	if err := c.dev.Set(f, v); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s set to %d, run read to see it\n", f, v)
	return nil
}

// parseValue accepts decimal numbers for every field and day names for the day field.
func parseValue(f ds3231m.Field, s string) (int, error) {
	if f == ds3231m.FieldDay {
		if d, ok := ds3231m.ParseWeekday(s); ok {
			return int(d), nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", f, s)
	}
	return v, nil
}

func (c *console) reg(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: reg <addr>")
	}
	addr, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		return fmt.Errorf("invalid register %q", args[0])
	}
	v, err := c.dev.ReadRegister(uint8(addr))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "0x%02x: 0x%02x\n", addr, v)
	return nil
}

func (c *console) runProbe(args []string) error {
	cfg := c.probe
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid iteration count %q", args[0])
		}
		cfg.Iterations = n
	}
	show := ds3231m.ReporterFunc(func(s ds3231m.Sample) {
		if s.Err != nil {
			fmt.Fprintf(c.out, "[%d] 0x%02x %-7s error: %v\n", s.Iteration, s.Register, s.Field, s.Err)
			return
		}
		fmt.Fprintf(c.out, "[%d] 0x%02x %-7s 0x%02x = %d\n", s.Iteration, s.Register, s.Field, s.Raw, s.Value)
	})
	res, err := c.dev.Probe(cfg, report.Multi(show, c.reporter))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d iterations, %d reads, %d failed\n", res.Iterations, res.Reads, res.Failures)
	return nil
}
