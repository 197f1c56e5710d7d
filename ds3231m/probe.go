package ds3231m

import "time"

const (
	DefaultProbeIterations = 100
	DefaultProbeInterval   = 500 * time.Millisecond
)

// ProbeConfig controls the bring-up sampling loop. All fields are optional.
type ProbeConfig struct {
	// Iterations defaults to 100 if zero or negative.
	Iterations int
	// Interval is the pause between iterations. Default 500 ms.
	Interval time.Duration
	// Sleep defaults to time.Sleep. Tests replace it to run without waiting.
	Sleep func(time.Duration)
}

// Sample is one register read made by Probe.
type Sample struct {
	Iteration int
	Field     Field
	Register  uint8
	Raw       uint8
	// Value is the decoded decimal value, zero when Err is set.
	Value int
	Err   error
}

// Reporter receives every sample of a probe run, failed reads included.
type Reporter interface {
	Report(s Sample)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(s Sample)

func (f ReporterFunc) Report(s Sample) { f(s) }

// ProbeResult summarises a probe run.
type ProbeResult struct {
	Iterations int
	Reads      int
	Failures   int
	// Committed counts the iterations in which all registers were read and State was updated.
	Committed int
}

// Probe repeatedly reads the time and date registers and reports each decoded value, as a diagnostic during
// bring-up. A failed read is reported and counted but never stops the run; the loop always completes its iteration
// budget. State is updated only by iterations in which every read succeeded.
//
// Probe returns an error only for an invalid handle.
func (d *Device) Probe(cfg ProbeConfig, r Reporter) (ProbeResult, error) {
	if !d.valid() {
		return ProbeResult{}, ErrInvalidHandle
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultProbeIterations
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultProbeInterval
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	if r == nil {
		r = ReporterFunc(func(Sample) {})
	}

	var res ProbeResult
	for i := 0; i < cfg.Iterations; i++ {
		if i > 0 {
			cfg.Sleep(cfg.Interval)
		}
		var raw [len(snapshotFields)]uint8
		complete := true
		for j, f := range snapshotFields {
			s := Sample{Iteration: i, Field: f, Register: f.Register()}
			v, err := d.read(s.Register)
			res.Reads++
			if err != nil {
				s.Err = err
				res.Failures++
				complete = false
				r.Report(s)
				continue
			}
			raw[j] = v
			s.Raw = v
			// hours needs the mode bit of the same byte
			s.Value = decodeField(f, v, hourModeOf(v))
			r.Report(s)
		}
		if complete {
			d.state = decodeState(raw)
			res.Committed++
		}
		res.Iterations++
	}
	return res, nil
}
