package core

import "testing"

func TestInputFrameSetHas(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionConfirm) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionConfirm)
	f.Set(ActionConfirm)
	if !f.Confirmed() {
		t.Error("Confirmed() should be true after Set(ActionConfirm)")
	}
	if len(f.Actions) != 1 {
		t.Errorf("repeated presses should collapse, got %d entries", len(f.Actions))
	}

	f.Clear()
	if f.Confirmed() {
		t.Error("Clear() should reset the frame")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionDie) {
		t.Error("zero frame should report no actions")
	}
	f.Set(ActionDie)
	if !f.Has(ActionDie) {
		t.Error("Set() on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionConfirm, "Confirm"},
		{ActionDie, "Die"},
		{ActionRetry, "Retry"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}

func TestEffectiveDelta(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.FrameDelta(); got != 1.0/60.0 {
		t.Errorf("FrameDelta() = %f, expected %f", got, 1.0/60.0)
	}

	cfg.TimeRate = 0.5
	if got := cfg.EffectiveDelta(0.1); got != 0.05 {
		t.Errorf("EffectiveDelta(0.1) at rate 0.5 = %f, expected 0.05", got)
	}

	cfg.TimeRate = 0
	if got := cfg.EffectiveDelta(0.1); got != 0.1 {
		t.Errorf("EffectiveDelta with zero rate = %f, expected raw 0.1", got)
	}
}
