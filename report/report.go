// Package report provides ds3231m.Reporter implementations for the probe loop: structured logging through zerolog
// and publishing to an MQTT broker as CBOR.
package report

import (
	"github.com/rs/zerolog"

	"github.com/ajanata/drivers/ds3231m"
)

// Log writes one log line per sample. Failed reads are logged at warn level.
type Log struct {
	logger zerolog.Logger
}

func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Report(s ds3231m.Sample) {
	if s.Err != nil {
		l.logger.Warn().
			Err(s.Err).
			Int("iteration", s.Iteration).
			Str("field", s.Field.String()).
			Hex("reg", []byte{s.Register}).
			Msg("register read failed")
		return
	}
	l.logger.Info().
		Int("iteration", s.Iteration).
		Str("field", s.Field.String()).
		Hex("reg", []byte{s.Register}).
		Hex("raw", []byte{s.Raw}).
		Int("value", s.Value).
		Msg("sample")
}

type multi []ds3231m.Reporter

func (m multi) Report(s ds3231m.Sample) {
	for _, r := range m {
		r.Report(s)
	}
}

// Multi fans every sample out to all non-nil reporters, in order.
func Multi(rs ...ds3231m.Reporter) ds3231m.Reporter {
	var m multi
	for _, r := range rs {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}
