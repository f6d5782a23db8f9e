package charting

import "testing"

func TestAxisRange(t *testing.T) {
	chartData := NewData()
	chartData.Append("a", 0.5)
	chartData.Append("b", 0.9)
	min, max := chartData.AxisRange()
	if min != 0.5 || max != 0.9 {
		t.Fatalf("expected (0.5, 0.9), got (%v, %v)", min, max)
	}
}

func TestAxisRangeFlat(t *testing.T) {
	chartData := NewData()
	chartData.Append("a", 1.0)
	chartData.Append("b", 1.0)
	min, max := chartData.AxisRange()
	if min != 0.99 || max != 1.01 {
		t.Fatalf("flat range not widened: (%v, %v)", min, max)
	}
}

func TestAxisRangeEmpty(t *testing.T) {
	min, max := NewData().AxisRange()
	if min != 0 || max != 0 {
		t.Fatalf("expected (0, 0), got (%v, %v)", min, max)
	}
}
