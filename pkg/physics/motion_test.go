package physics

import (
	"math"
	"testing"
)

func TestFrictionPerTick(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		expected float64
	}{
		{"reference_rate", 100, 0.015},
		{"half_rate", 50, 1 - 0.985*0.985},
		{"double_rate", 200, 1 - math.Sqrt(0.985)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := FrictionPerTick(0.015, tt.rate); !approxEqual(result, tt.expected) {
				t.Errorf("FrictionPerTick() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestShotSpeed_SquareRootScaling(t *testing.T) {
	base := ShotSpeed(10, 100)
	if !approxEqual(base, 1) {
		t.Errorf("ShotSpeed(10, 100) = %v, expected 1", base)
	}

	prev := 0.0
	for _, d := range []float64{1, 4, 9, 16, 25} {
		s := ShotSpeed(d, 100)
		if s <= prev {
			t.Errorf("ShotSpeed not increasing at distance %v: %v <= %v", d, s, prev)
		}
		prev = s
	}

	if ratio := ShotSpeed(40, 100) / ShotSpeed(10, 100); !approxEqual(ratio, 2) {
		t.Errorf("quadrupling distance should double speed, ratio = %v", ratio)
	}
}

func TestMovementState_Advance(t *testing.T) {
	f := FrictionPerTick(0.015, 100)
	m := MovementState{Position: Vec(100, 100), Velocity: Vec(1, 0)}

	if !m.Advance(f) {
		t.Fatal("Advance() on moving state returned false")
	}
	if !vectorsEqual(m.Position, Vec(101, 100)) {
		t.Errorf("Position = %v, expected (101, 100)", m.Position)
	}
	if !vectorsEqual(m.Velocity, Vec(1-f, 0)) {
		t.Errorf("Velocity = %v, expected (%v, 0)", m.Velocity, 1-f)
	}
}

func TestMovementState_StoppedIsIdempotent(t *testing.T) {
	f := FrictionPerTick(0.015, 100)
	m := MovementState{Position: Vec(50, 60), Velocity: Zero}

	for i := 0; i < 10; i++ {
		if m.Advance(f) {
			t.Fatal("Advance() on stopped state returned true")
		}
	}
	if m.Position != Vec(50, 60) {
		t.Errorf("stopped state moved to %v", m.Position)
	}
}

func TestMovementState_DecaysToRest(t *testing.T) {
	f := FrictionPerTick(0.015, 100)
	m := MovementState{Position: Vec(0, 0), Velocity: Vec(0.6, 0.8)}

	ticks := 0
	for m.Advance(f) {
		ticks++
		if ticks > 1000 {
			t.Fatal("state never came to rest")
		}
	}
	if m.IsMoving(f) {
		t.Error("IsMoving() true after Advance() reported rest")
	}
	// Speed 1 loses f per tick, so it rests after about 1/f ticks.
	if expected := int(math.Ceil(1 / f)); ticks < expected-1 || ticks > expected+1 {
		t.Errorf("came to rest after %d ticks, expected about %d", ticks, expected)
	}
}
