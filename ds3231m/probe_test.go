package ds3231m

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

type recorder struct {
	samples []Sample
}

func (r *recorder) Report(s Sample) { r.samples = append(r.samples, s) }

func TestProbeReadsEveryRegister(t *testing.T) {
	c := qt.New(t)
	bus := newFakeI2C()
	bus.regs[Seconds] = 0x45
	bus.regs[Minutes] = 0x30
	bus.set12h(0x07, true)
	bus.regs[Day] = 0x05
	bus.regs[Date] = 0x18
	d := New(bus)

	var sleeps []time.Duration
	rec := &recorder{}
	res, err := d.Probe(ProbeConfig{
		Iterations: 3,
		Interval:   250 * time.Millisecond,
		Sleep:      func(d time.Duration) { sleeps = append(sleeps, d) },
	}, rec)
	c.Assert(err, qt.IsNil)
	c.Assert(res, qt.Equals, ProbeResult{Iterations: 3, Reads: 15, Failures: 0, Committed: 3})
	c.Assert(sleeps, qt.DeepEquals, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond})
	c.Assert(rec.samples, qt.HasLen, 15)
	c.Assert(rec.samples[0], qt.Equals, Sample{Iteration: 0, Field: FieldSeconds, Register: Seconds, Raw: 0x45, Value: 45})
	c.Assert(rec.samples[2], qt.Equals, Sample{Iteration: 0, Field: FieldHours, Register: Hours, Raw: 0x67, Value: 7})
	c.Assert(rec.samples[14].Iteration, qt.Equals, 2)
	c.Assert(rec.samples[14].Field, qt.Equals, FieldDate)

	c.Assert(d.State(), qt.Equals, State{
		Seconds: 45,
		Minutes: 30,
		Hours:   7,
		Day:     Friday,
		Date:    18,
		Mode:    TwelveHour,
		PM:      true,
	})
}

func TestProbeContinuesPastReadFailures(t *testing.T) {
	c := qt.New(t)
	bus := newFakeI2C()
	bus.regs[Seconds] = 0x01
	bus.regs[Date] = 0x02
	bus.readErr[Minutes] = errBus
	d := New(bus)

	rec := &recorder{}
	res, err := d.Probe(ProbeConfig{Iterations: 4, Sleep: func(time.Duration) {}}, rec)
	c.Assert(err, qt.IsNil)
	c.Assert(res.Iterations, qt.Equals, 4)
	c.Assert(res.Reads, qt.Equals, 20)
	c.Assert(res.Failures, qt.Equals, 4)
	c.Assert(res.Committed, qt.Equals, 0)

	// every register after the failing one is still attempted, in every iteration
	want := []uint8{}
	for i := 0; i < 4; i++ {
		want = append(want, Seconds, Minutes, Hours, Day, Date)
	}
	c.Assert(bus.reads, qt.DeepEquals, want)

	failed := rec.samples[1]
	c.Assert(failed.Field, qt.Equals, FieldMinutes)
	c.Assert(failed.Err, qt.ErrorIs, ErrTransport)
	c.Assert(failed.Value, qt.Equals, 0)
	c.Assert(rec.samples[4].Value, qt.Equals, 2)

	// no complete iteration, so nothing was committed
	c.Assert(d.State(), qt.Equals, State{})
}

func TestProbeCommitsOnlyCompleteIterations(t *testing.T) {
	c := qt.New(t)
	bus := newFakeI2C()
	bus.regs[Seconds] = 0x10
	d := New(bus)

	iteration := 0
	_, err := d.Probe(ProbeConfig{
		Iterations: 2,
		Sleep: func(time.Duration) {
			// second iteration sees a new value but fails part way
			iteration++
			bus.regs[Seconds] = 0x20
			bus.readErr[Date] = errBus
		},
	}, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(iteration, qt.Equals, 1)
	c.Assert(d.State().Seconds, qt.Equals, 10)
}

func TestProbeDefaults(t *testing.T) {
	c := qt.New(t)
	bus := newFakeI2C()
	d := New(bus)

	var slept time.Duration
	res, err := d.Probe(ProbeConfig{Sleep: func(d time.Duration) { slept += d }}, ReporterFunc(func(Sample) {}))
	c.Assert(err, qt.IsNil)
	c.Assert(res.Iterations, qt.Equals, DefaultProbeIterations)
	c.Assert(slept, qt.Equals, time.Duration(DefaultProbeIterations-1)*DefaultProbeInterval)
}
