package component

import (
	"testing"
	"time"
)

func TestFrameClockAdvance(t *testing.T) {
	tests := []struct {
		name        string
		period      time.Duration
		deltas      []time.Duration
		wantFires   []bool
		wantElapsed time.Duration
	}{
		{
			name:        "accumulates_then_fires",
			period:      100 * time.Millisecond,
			deltas:      []time.Duration{40 * time.Millisecond, 40 * time.Millisecond, 40 * time.Millisecond},
			wantFires:   []bool{false, false, true},
			wantElapsed: 20 * time.Millisecond,
		},
		{
			name:        "overshoot_fires_once",
			period:      100 * time.Millisecond,
			deltas:      []time.Duration{350 * time.Millisecond, 0},
			wantFires:   []bool{true, false},
			wantElapsed: 50 * time.Millisecond,
		},
		{
			name:        "zero_period_fires_every_tick",
			period:      0,
			deltas:      []time.Duration{0, time.Millisecond},
			wantFires:   []bool{true, true},
			wantElapsed: 0,
		},
		{
			name:        "negative_delta_ignored",
			period:      10 * time.Millisecond,
			deltas:      []time.Duration{-time.Second, 5 * time.Millisecond},
			wantFires:   []bool{false, false},
			wantElapsed: 5 * time.Millisecond,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewFrameClock(tc.period)
			for i, d := range tc.deltas {
				if got := c.Advance(d); got != tc.wantFires[i] {
					t.Fatalf("advance %d: expected fired=%v, got %v", i, tc.wantFires[i], got)
				}
			}
			if c.Elapsed != tc.wantElapsed {
				t.Fatalf("expected elapsed %s, got %s", tc.wantElapsed, c.Elapsed)
			}
		})
	}
}

func TestFrameClockResetToPeriodForcesFire(t *testing.T) {
	c := NewFrameClock(time.Second)
	c.Advance(300 * time.Millisecond)
	c.ResetToPeriod()
	if !c.Advance(0) {
		t.Fatalf("expected a primed clock to fire on a zero delta")
	}
	if c.Advance(0) {
		t.Fatalf("expected the prime to be consumed by one fire")
	}
}
