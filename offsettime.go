package tagval

import (
	"math"
	"time"
)

// OffsetTime is an instant paired with the UTC offset it was observed at.
// Unlike time.Time it carries no *time.Location, so it fits in the inline
// cell as plain bits.
type OffsetTime struct {
	sec    int64 // Unix seconds
	nsec   int32 // [0, 1e9)
	offset int32 // seconds east of UTC
}

// OffsetTimeOf captures the instant of t and the offset of its zone at that
// instant.
func OffsetTimeOf(t time.Time) OffsetTime {
	_, offset := t.Zone()
	return OffsetTime{sec: t.Unix(), nsec: int32(t.Nanosecond()), offset: checkOffset(int64(offset))}
}

// NewOffsetTime returns the instant sec/nsec since the Unix epoch at the
// given UTC offset. nsec outside [0, 1e9) is normalized into sec. It panics
// if the offset, in whole seconds, does not fit in 32 bits.
func NewOffsetTime(sec int64, nsec int64, offset time.Duration) OffsetTime {
	t := time.Unix(sec, nsec)
	return OffsetTime{sec: t.Unix(), nsec: int32(t.Nanosecond()), offset: checkOffset(int64(offset / time.Second))}
}

func checkOffset(sec int64) int32 {
	if sec < math.MinInt32 || sec > math.MaxInt32 {
		panic("tagval: offset " + (time.Duration(sec) * time.Second).String() + " out of range")
	}
	return int32(sec)
}

// Time returns the instant in a fixed zone with o's offset.
func (o OffsetTime) Time() time.Time {
	t := time.Unix(o.sec, int64(o.nsec))
	if o.offset == 0 {
		return t.UTC()
	}
	return t.In(time.FixedZone("", int(o.offset)))
}

// Offset returns the UTC offset.
func (o OffsetTime) Offset() time.Duration {
	return time.Duration(o.offset) * time.Second
}

// Unix returns the instant as Unix seconds and nanoseconds.
func (o OffsetTime) Unix() (sec int64, nsec int32) {
	return o.sec, o.nsec
}

// Equal reports whether o and u are the same instant, regardless of offset.
func (o OffsetTime) Equal(u OffsetTime) bool {
	return o.sec == u.sec && o.nsec == u.nsec
}

func (o OffsetTime) String() string {
	return o.Time().Format(time.RFC3339Nano)
}
