// Package monotime provides a monotonic timestamp type.
//
// All timing decisions of the prediction core are based on monotonic time;
// wall-clock jumps must never influence jitter estimation or bucketing.
package monotime

import "time"

var epoch = time.Now()

// A Time is a monotonic timestamp, expressed as nanoseconds since an
// arbitrary epoch. The zero value means "unset"; Now never returns it.
type Time int64

// Now returns the current monotonic time.
func Now() Time {
	// offset by 1ns, so that the result is never the zero value,
	// even when called right at the epoch
	return Time(time.Since(epoch)) + 1
}

// FromTime converts a wall-clock timestamp. The conversion uses the
// monotonic clock reading when t carries one.
func FromTime(t time.Time) Time {
	return Time(t.Sub(epoch)) + 1
}

// IsZero reports whether t is the zero (unset) value.
func (t Time) IsZero() bool { return t == 0 }

// Add returns t + d.
func (t Time) Add(d time.Duration) Time { return t + Time(d) }

// Sub returns the duration t - u.
func (t Time) Sub(u Time) time.Duration { return time.Duration(t - u) }

// Equal reports whether t and u are the same instant.
func (t Time) Equal(u Time) bool { return t == u }

// After reports whether t is after u.
func (t Time) After(u Time) bool { return t > u }

// Before reports whether t is before u.
func (t Time) Before(u Time) bool { return t < u }

// WholeSeconds returns the number of whole seconds since the epoch.
// It is used to assign samples to per-second buckets.
func (t Time) WholeSeconds() uint64 { return uint64(time.Duration(t) / time.Second) }

// Since returns the time elapsed since t.
func Since(t Time) time.Duration { return Now().Sub(t) }

// Until returns the duration until t.
func Until(t Time) time.Duration { return t.Sub(Now()) }
