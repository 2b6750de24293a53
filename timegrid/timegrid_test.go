package timegrid

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		h, m int
		ok   bool
	}{
		{"00:00", 0, 0, true},
		{"08:15", 8, 15, true},
		{"23:59", 23, 59, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"9:30", 0, 0, false},
		{"09-30", 0, 0, false},
		{"ab:cd", 0, 0, false},
		{"", 0, 0, false},
		{"09:301", 0, 0, false},
	}
	for _, tc := range cases {
		c, err := ParseClock(tc.in)
		if tc.ok {
			if err != nil || c.Hour != tc.h || c.Minute != tc.m {
				t.Fatalf("%q: got %v (err=%v), want %02d:%02d", tc.in, c, err, tc.h, tc.m)
			}
		} else if err == nil {
			t.Fatalf("%q: expected ErrMalformedTime", tc.in)
		}
	}
}

func TestTimeToOffset(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		in   string
		want float64
	}{
		{"08:00", 0},
		{"08:15", 10}, // one snap step = 15min = 10px at 40px/h
		{"09:00", 40},
		{"09:07", 40},  // snaps down to 09:00
		{"09:08", 50},  // snaps up to 09:15
		{"07:00", 0},   // before the window floors at zero
		{"23:45", 630},
	}
	for _, tc := range cases {
		c, err := ParseClock(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := cfg.TimeToOffset(c); got != tc.want {
			t.Fatalf("TimeToOffset(%s) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// Times already aligned to the snap granularity must survive an
// offset -> minutes -> time round trip unchanged.
func TestTimeToOffsetRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	for h := cfg.StartHour; h < 24; h++ {
		for m := 0; m < 60; m += cfg.SnapMinutes {
			in := Clock{Hour: h, Minute: m}
			off := cfg.TimeToOffset(in)
			minutes := int(off/float64(cfg.RowHeightPx)*60) + cfg.StartHour*60
			out := Clock{Hour: minutes / 60, Minute: minutes % 60}
			if out != in {
				t.Fatalf("round trip %v -> %vpx -> %v", in, off, out)
			}
		}
	}
}

func TestApplyVerticalDrag(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name   string
		start  string
		deltaY float64
		want   string
	}{
		{"one hour down", "10:00", 40, "11:00"},
		{"one snap down", "10:00", 10, "10:15"},
		{"snaps to nearest step", "10:00", 12, "10:15"},
		{"up", "10:30", -20, "10:00"},
		{"zero delta", "10:45", 0, "10:45"},
		{"pins at end of day", "22:00", 100000, "23:59"},
		{"pins at window start", "09:00", -100000, "08:00"},
	}
	for _, tc := range cases {
		start, err := ParseClock(tc.start)
		if err != nil {
			t.Fatal(err)
		}
		if got := cfg.ApplyVerticalDrag(start, tc.deltaY).String(); got != tc.want {
			t.Fatalf("%s: ApplyVerticalDrag(%s, %v) = %s, want %s", tc.name, tc.start, tc.deltaY, got, tc.want)
		}
	}
}

func TestApplyVerticalDragNeverLeavesDay(t *testing.T) {
	cfg := DefaultConfig()
	start := Clock{Hour: 12, Minute: 0}
	for _, d := range []float64{-1e6, -333, -40, 0, 40, 333, 1e6} {
		got := cfg.ApplyVerticalDrag(start, d)
		if got.Hour < 0 || got.Hour > 23 || got.Minute < 0 || got.Minute > 59 {
			t.Fatalf("delta %v produced out-of-day time %v", d, got)
		}
	}
}

func TestApplyHorizontalDrag(t *testing.T) {
	// 2026-08-26 is a Wednesday.
	wed := time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)

	if got := ApplyHorizontalDrag(wed, time.Wednesday); !got.Equal(wed) {
		t.Fatalf("same-column drop must be a no-op, got %v", got)
	}
	if got := ApplyHorizontalDrag(wed, time.Sunday); got.Day() != 23 || got.Weekday() != time.Sunday {
		t.Fatalf("drop on Sunday: got %v", got)
	}
	if got := ApplyHorizontalDrag(wed, time.Saturday); got.Day() != 29 || got.Weekday() != time.Saturday {
		t.Fatalf("drop on Saturday: got %v", got)
	}
	// Time of day is preserved.
	if got := ApplyHorizontalDrag(wed, time.Monday); got.Hour() != 14 || got.Minute() != 30 {
		t.Fatalf("time of day not preserved: %v", got)
	}
	// Month boundary: Monday 2026-08-31 dragged to Saturday lands in September.
	mon := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	if got := ApplyHorizontalDrag(mon, time.Saturday); got.Month() != time.September || got.Day() != 5 {
		t.Fatalf("month boundary drag: got %v", got)
	}
}

func TestDayKey(t *testing.T) {
	morning := time.Date(2026, 1, 29, 7, 0, 0, 0, time.UTC)
	night := time.Date(2026, 1, 29, 23, 45, 0, 0, time.UTC)
	if DayKey(morning) != DayKey(night) {
		t.Fatalf("same date must share a cell: %s vs %s", DayKey(morning), DayKey(night))
	}
	if DayKey(morning) != "2026-01-29" {
		t.Fatalf("DayKey = %s", DayKey(morning))
	}
	next := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	if DayKey(morning) == DayKey(next) {
		t.Fatal("different dates must not share a cell")
	}
}

func TestColorForIDStable(t *testing.T) {
	a := ColorForID("task-17")
	if a != ColorForID("task-17") {
		t.Fatal("color must be stable per id")
	}
	if a == "" {
		t.Fatal("color must not be empty")
	}
}
