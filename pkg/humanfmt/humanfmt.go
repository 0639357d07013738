// Package humanfmt renders byte counts, durations, iteration counts and
// per-operation timings for the report table and pretty log fields.
package humanfmt

import (
	"fmt"
	"strconv"
	"time"
)

// Binary (IEC) units for bytes.
const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
)

// unit is one step of a scale, largest first.
type unit struct {
	size   float64
	suffix string
}

var (
	byteUnits  = []unit{{GiB, " GiB"}, {MiB, " MiB"}, {KiB, " KiB"}}
	countUnits = []unit{{1e9, "B"}, {1e6, "M"}, {1e3, "K"}}
	nsUnits    = []unit{{1e9, "s"}, {1e6, "ms"}, {1e3, "µs"}}
)

// scaled formats v in the largest unit it reaches with the given precision.
// ok is false when v is below every unit.
func scaled(v float64, units []unit, prec int) (s string, ok bool) {
	for _, u := range units {
		if v >= u.size {
			return strconv.FormatFloat(v/u.size, 'f', prec, 64) + u.suffix, true
		}
	}
	return "", false
}

// Bytes formats a byte count in IEC units: "512 B", "80.00 KiB", "1.50 GiB".
func Bytes(b int64) string {
	if s, ok := scaled(float64(b), byteUnits, 2); ok {
		return s
	}
	return strconv.FormatInt(b, 10) + " B"
}

// Count formats a count with SI suffixes: "789", "456.00K", "1.23M".
func Count(n int64) string {
	if s, ok := scaled(float64(n), countUnits, 2); ok {
		return s
	}
	return strconv.FormatInt(n, 10)
}

// NsPerOp formats a fractional per-operation time in nanoseconds, keeping
// sub-nanosecond precision: "0.42ns", "812.00ns", "1.23µs", "4.56ms".
func NsPerOp(ns float64) string {
	if s, ok := scaled(ns, nsUnits, 2); ok {
		return s
	}
	return strconv.FormatFloat(ns, 'f', 2, 64) + "ns"
}

// Duration formats a wall-clock span: "789.0µs", "45.6ms", "1.23s", "1m30s",
// "2h15m".
func Duration(d time.Duration) string {
	switch {
	case d < 0:
		return d.String()
	case d >= time.Hour:
		return compound(d/time.Hour, "h", (d%time.Hour)/time.Minute, "m")
	case d >= time.Minute:
		return compound(d/time.Minute, "m", (d%time.Minute)/time.Second, "s")
	case d >= time.Second:
		return strconv.FormatFloat(d.Seconds(), 'f', 2, 64) + "s"
	case d >= time.Microsecond:
		s, _ := scaled(float64(d), nsUnits[1:], 1)
		return s
	default:
		return strconv.FormatInt(d.Nanoseconds(), 10) + "ns"
	}
}

func compound(major time.Duration, majorUnit string, minor time.Duration, minorUnit string) string {
	if minor == 0 {
		return fmt.Sprintf("%d%s", major, majorUnit)
	}
	return fmt.Sprintf("%d%s%d%s", major, majorUnit, minor, minorUnit)
}

// Ratio formats how many times slower x is than base, e.g. "3.21x".
// Returns "-" when base is not positive.
func Ratio(x, base float64) string {
	if base <= 0 {
		return "-"
	}
	return strconv.FormatFloat(x/base, 'f', 2, 64) + "x"
}
