package eyes

import (
	"math"
	"math/rand"
	"testing"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func testEye(seed int64) *Eye {
	return newEye("test", DefaultConfig(), rand.New(rand.NewSource(seed)))
}

func TestSmoothstep_Endpoints(t *testing.T) {
	if got := smoothstep(0); got != 0 {
		t.Errorf("smoothstep(0): got %v, want 0", got)
	}
	if got := smoothstep(1); got != 1 {
		t.Errorf("smoothstep(1): got %v, want 1", got)
	}
	// Out-of-range inputs clamp.
	if got := smoothstep(-0.5); got != 0 {
		t.Errorf("smoothstep(-0.5): got %v, want 0", got)
	}
	if got := smoothstep(1.5); got != 1 {
		t.Errorf("smoothstep(1.5): got %v, want 1", got)
	}
}

func TestSmoothstep_ZeroVelocityAtBoundaries(t *testing.T) {
	const eps = 1e-4
	// Finite-difference slope at both ends should vanish.
	startSlope := (smoothstep(eps) - smoothstep(0)) / eps
	endSlope := (smoothstep(1) - smoothstep(1-eps)) / eps

	if startSlope > 1e-3 {
		t.Errorf("slope at start: got %v, want ~0", startSlope)
	}
	if endSlope > 1e-3 {
		t.Errorf("slope at end: got %v, want ~0", endSlope)
	}
}

func TestEye_MoveIsContinuousAndMonotonic(t *testing.T) {
	e := testEye(1)

	// Put the eye into a known move: 0 → 100 over 100ms.
	e.oldX, e.oldY = 0, 0
	e.newX, e.newY = 100, 50
	e.moving = true
	e.moveStart = 0
	e.moveDur = 100000

	const step = int64(1000)
	prevX := e.x
	var maxDelta float64
	for now := int64(0); now < 100000; now += step {
		e.UpdateAutonomous(now)
		delta := e.x - prevX
		if delta < 0 {
			t.Fatalf("progress reversed at t=%d: x went %v → %v", now, prevX, e.x)
		}
		if delta > maxDelta {
			maxDelta = delta
		}
		prevX = e.x
	}

	// Per-step deltas at the window edges must be far below the peak
	// mid-move delta (zero velocity at both boundaries).
	e2 := testEye(1)
	e2.newX, e2.moveDur, e2.moving = 100, 100000, true
	e2.UpdateAutonomous(step)
	if edge := e2.x; edge > maxDelta/5 {
		t.Errorf("delta at start %v not small vs peak %v", edge, maxDelta)
	}
}

func TestEye_MoveCompletionSnapsToTarget(t *testing.T) {
	e := testEye(2)
	e.newX, e.newY = 42, -17
	e.moving = true
	e.moveStart = 0
	e.moveDur = 100000

	e.UpdateAutonomous(100000)

	if e.moving {
		t.Error("eye still moving after duration elapsed")
	}
	if !floatEquals(e.x, 42) || !floatEquals(e.y, -17) {
		t.Errorf("position after completion: got (%v, %v), want (42, -17)", e.x, e.y)
	}
	if !floatEquals(e.oldX, 42) || !floatEquals(e.oldY, -17) {
		t.Errorf("old position not updated: got (%v, %v)", e.oldX, e.oldY)
	}
}

func TestEye_HoldAndSaccadeIntervalRanges(t *testing.T) {
	// After each completed movement with no pending deadline, the hold
	// duration lies in [HoldMin, min(HoldCap, GazeMax)] and the drawn
	// saccade interval lies in [hold, GazeMax].
	cfg := DefaultConfig()
	e := newEye("test", cfg, rand.New(rand.NewSource(99)))

	now := int64(0)
	for i := 0; i < 10000; i++ {
		now += 10
		e.moving = true
		e.moveStart = now - 5
		e.moveDur = 1
		e.saccadeInterval = 0
		e.UpdateAutonomous(now)

		if e.moveDur < cfg.HoldMin || e.moveDur > cfg.HoldCap {
			t.Fatalf("iteration %d: hold %d outside [%d, %d]", i, e.moveDur, cfg.HoldMin, cfg.HoldCap)
		}
		if e.saccadeInterval < e.moveDur || e.saccadeInterval > cfg.GazeMax {
			t.Fatalf("iteration %d: saccade interval %d outside [%d, %d]",
				i, e.saccadeInterval, e.moveDur, cfg.GazeMax)
		}
	}
}

func TestEye_PendingIntervalSurvivesCompletion(t *testing.T) {
	e := testEye(3)
	e.moving = true
	e.moveStart = 0
	e.moveDur = 1
	e.saccadeInterval = 2500000
	e.lastSaccadeStop = 0

	e.UpdateAutonomous(100)

	if e.saccadeInterval != 2500000 {
		t.Errorf("pending interval redrawn: got %d, want 2500000", e.saccadeInterval)
	}
}

func TestEye_IdleFiresMicrosaccadeBeforeDeadline(t *testing.T) {
	cfg := DefaultConfig()
	e := newEye("test", cfg, rand.New(rand.NewSource(4)))
	e.oldX, e.oldY = 10, 20
	e.moveDur = 50000 // hold
	e.moveStart = 0
	e.lastSaccadeStop = 0
	e.saccadeInterval = cfg.GazeMax // deadline far away

	e.UpdateAutonomous(60000)

	if !e.moving {
		t.Fatal("expected movement to start after hold elapsed")
	}
	dx, dy := e.newX-10, e.newY-20
	limit := cfg.DisplayRadius * cfg.MicrosaccadeRadiusFrac
	if dist := math.Hypot(dx, dy); dist > limit+floatTolerance {
		t.Errorf("microsaccade jumped %v, limit %v", dist, limit)
	}
	if e.moveDur < cfg.MicrosaccadeMin || e.moveDur > cfg.MicrosaccadeMax {
		t.Errorf("microsaccade duration %d outside [%d, %d]",
			e.moveDur, cfg.MicrosaccadeMin, cfg.MicrosaccadeMax)
	}
}

func TestEye_IdleFiresMajorSaccadeAfterDeadline(t *testing.T) {
	cfg := DefaultConfig()
	e := newEye("test", cfg, rand.New(rand.NewSource(5)))
	e.moveDur = 50000
	e.moveStart = 0
	e.lastSaccadeStop = 0
	e.saccadeInterval = 100000

	e.UpdateAutonomous(200000)

	if !e.moving {
		t.Fatal("expected movement to start after saccade deadline")
	}
	if e.saccadeInterval != 0 {
		t.Errorf("saccade deadline not cleared: %d", e.saccadeInterval)
	}
	limit := cfg.DisplayRadius * cfg.SaccadeRadiusFrac
	if dist := math.Hypot(e.newX, e.newY); dist > limit+floatTolerance {
		t.Errorf("saccade target %v outside disk of radius %v", dist, limit)
	}
	if e.moveDur < cfg.SaccadeMin || e.moveDur > cfg.SaccadeMax {
		t.Errorf("saccade duration %d outside [%d, %d]", e.moveDur, cfg.SaccadeMin, cfg.SaccadeMax)
	}
}

func TestEye_TrackingSnapsInstantly(t *testing.T) {
	cfg := DefaultConfig()
	e := newEye("test", cfg, rand.New(rand.NewSource(6)))

	e.UpdateTracking(0.5, -0.5)

	want := 0.5 * cfg.TrackScale * cfg.DisplayRadius
	if e.x != want || e.y != -want {
		t.Errorf("tracked position: got (%v, %v), want (%v, %v)", e.x, e.y, want, -want)
	}
}

func TestEye_SnapshotDoesNotMutate(t *testing.T) {
	e := testEye(7)
	e.x, e.y, e.blinkFactor = 1, 2, 0.3

	before := *e
	s := e.Snapshot()
	after := *e

	if before != after {
		t.Error("Snapshot mutated eye state")
	}
	if s.X != 1 || s.Y != 2 || !floatEquals(s.BlinkFactor, 0.3) {
		t.Errorf("unexpected snapshot: %+v", s)
	}
}
