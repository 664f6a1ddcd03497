package telemetry

import (
	"math"
	"testing"
)

func TestSpeedStatsEmpty(t *testing.T) {
	mean, p10, p50, p90, max := SpeedStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestSpeedStatsBasic(t *testing.T) {
	speeds := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, p10, p50, _, max := SpeedStats(speeds)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if max != 1.0 {
		t.Errorf("max = %v, want 1.0", max)
	}
	if p10 <= 0 || p10 >= p50 {
		t.Errorf("p10 = %v, want between 0 and p50 (%v)", p10, p50)
	}
}

func TestSpeedStatsSingleValue(t *testing.T) {
	mean, p10, p50, p90, max := SpeedStats([]float64{5.0})
	if mean != 5.0 || p10 != 5.0 || p50 != 5.0 || p90 != 5.0 || max != 5.0 {
		t.Errorf("single-value stats should all equal 5.0, got mean=%v p10=%v p50=%v p90=%v max=%v", mean, p10, p50, p90, max)
	}
}

func TestWindowStatsLogValue(t *testing.T) {
	s := WindowStats{
		WindowEndTick:  100,
		FluidParticles: 42,
		TotalMass:      12.5,
	}
	v := s.LogValue()
	if v.Kind().String() != "Group" {
		t.Errorf("expected a group value, got %v", v.Kind())
	}
}
