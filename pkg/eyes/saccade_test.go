package eyes

import (
	"math"
	"math/rand"
	"testing"
)

func TestInDisk_StaysInsideDisk(t *testing.T) {
	rng := rand.New(rand.NewSource(20))
	const r = 180.0

	for i := 0; i < 10000; i++ {
		x, y := inDisk(rng, 0, 0, r)
		if dist := math.Hypot(x, y); dist > r+floatTolerance {
			t.Fatalf("iteration %d: point (%v, %v) at distance %v outside radius %v", i, x, y, dist, r)
		}
	}
}

func TestInDisk_RespectsCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	const r = 16.8

	for i := 0; i < 10000; i++ {
		x, y := inDisk(rng, 100, -50, r)
		if dist := math.Hypot(x-100, y+50); dist > r+floatTolerance {
			t.Fatalf("iteration %d: offset %v outside radius %v", i, dist, r)
		}
	}
}

func TestNextSaccade_Bounds(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(22))
	limit := cfg.DisplayRadius * cfg.SaccadeRadiusFrac

	for i := 0; i < 10000; i++ {
		x, y, dur := nextSaccade(rng, cfg)
		if dist := math.Hypot(x, y); dist > limit+floatTolerance {
			t.Fatalf("iteration %d: target at %v, limit %v", i, dist, limit)
		}
		if dur < cfg.SaccadeMin || dur > cfg.SaccadeMax {
			t.Fatalf("iteration %d: duration %d outside [%d, %d]", i, dur, cfg.SaccadeMin, cfg.SaccadeMax)
		}
	}
}

func TestNextMicrosaccade_Bounds(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(23))
	limit := cfg.DisplayRadius * cfg.MicrosaccadeRadiusFrac

	for i := 0; i < 10000; i++ {
		cx, cy := uniform(rng, -100, 100), uniform(rng, -100, 100)
		x, y, dur := nextMicrosaccade(rng, cfg, cx, cy)
		if dist := math.Hypot(x-cx, y-cy); dist > limit+floatTolerance {
			t.Fatalf("iteration %d: jitter %v, limit %v", i, dist, limit)
		}
		if dur < cfg.MicrosaccadeMin || dur > cfg.MicrosaccadeMax {
			t.Fatalf("iteration %d: duration %d outside [%d, %d]",
				i, dur, cfg.MicrosaccadeMin, cfg.MicrosaccadeMax)
		}
	}
}

func TestNextHold_CappedByGazeMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GazeMax = 500000 // below HoldCap
	rng := rand.New(rand.NewSource(24))

	for i := 0; i < 1000; i++ {
		hold := nextHold(rng, cfg)
		if hold < cfg.HoldMin || hold > cfg.GazeMax {
			t.Fatalf("iteration %d: hold %d outside [%d, %d]", i, hold, cfg.HoldMin, cfg.GazeMax)
		}
	}
}

func TestDurRange_DegenerateCollapsesToLow(t *testing.T) {
	rng := rand.New(rand.NewSource(25))
	if got := durRange(rng, 7000, 7000); got != 7000 {
		t.Errorf("equal bounds: got %d, want 7000", got)
	}
	if got := durRange(rng, 9000, 7000); got != 9000 {
		t.Errorf("inverted bounds: got %d, want 9000", got)
	}
}
