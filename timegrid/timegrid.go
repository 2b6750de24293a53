// Package timegrid maps between wall-clock times and pixel positions inside
// the week-view day columns, and recomputes a task's date/time after a drag
// gesture. Everything here is pure arithmetic over values the caller already
// fetched; nothing is persisted.
package timegrid

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrMalformedTime = errors.New("timegrid: malformed HH:MM time")

// Config describes one rendered grid. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	RowHeightPx int // pixels per hour
	StartHour   int // first displayed hour, 0..23
	SnapMinutes int // drag snapping granularity
	DayCount    int // columns in the week view
}

func DefaultConfig() Config {
	return Config{RowHeightPx: 40, StartHour: 8, SnapMinutes: 15, DayCount: 7}
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a strict 24-hour "HH:MM" string. Anything else
// (non-numeric, out of range, wrong shape) is ErrMalformedTime; callers are
// expected to fall back to treating the item as flexible.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return Clock{}, ErrMalformedTime
	}
	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return Clock{}, ErrMalformedTime
	}
	return Clock{Hour: h, Minute: m}, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes is the offset from midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// TimeToOffset converts a start time into the vertical pixel offset of its
// card inside a day column. Minutes since the window start are snapped to
// SnapMinutes before scaling, and the result never goes negative, so items
// before the visible window sit at offset 0. Monotonic in time of day.
func (cfg Config) TimeToOffset(start Clock) float64 {
	sinceStart := start.Minutes() - cfg.StartHour*60
	snapped := snapMinutes(sinceStart, cfg.SnapMinutes)
	return math.Max(0, float64(snapped)*float64(cfg.RowHeightPx)/60)
}

// ApplyVerticalDrag moves a start time by a vertical pixel delta, snapped to
// SnapMinutes. The result is pinned inside the day: a drag past midnight
// lands on 23:59 and a drag above the window start lands on StartHour:00,
// never a rollover into an adjacent day.
func (cfg Config) ApplyVerticalDrag(start Clock, deltaYPx float64) Clock {
	base := start.Minutes() - cfg.StartHour*60
	delta := snapMinutes(int(math.Round(deltaYPx/float64(cfg.RowHeightPx)*60)), cfg.SnapMinutes)

	minutes := base + delta
	if minutes < 0 {
		minutes = 0
	}
	if limit := 1439 - cfg.StartHour*60; minutes > limit {
		minutes = limit
	}
	return Clock{
		Hour:   cfg.StartHour + minutes/60,
		Minute: minutes % 60,
	}
}

// snapMinutes rounds m to the nearest multiple of snap (half away from zero).
func snapMinutes(m, snap int) int {
	if snap <= 0 {
		return m
	}
	return int(math.Round(float64(m)/float64(snap))) * snap
}

// ApplyHorizontalDrag moves a date onto the target weekday of the same week,
// preserving time of day. Dropping an item onto its own column is a no-op.
func ApplyHorizontalDrag(date time.Time, target time.Weekday) time.Time {
	return date.AddDate(0, 0, int(target)-int(date.Weekday()))
}

// DayKey buckets a timestamp into its month-view calendar cell. Two tasks on
// the same calendar date always share a key, whatever their hour.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
