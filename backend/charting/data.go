package charting

import "gonum.org/v1/gonum/floats"

type Data struct {
	X []string
	Y []float64
}

func NewData() *Data {
	return &Data{}
}

func (cd *Data) Append(x string, y float64) {
	cd.X = append(cd.X, x)
	cd.Y = append(cd.Y, y)
}

// AxisRange widens a flat value range by 0.01 on both sides, so a
// payload filled with a single value still gets a readable color scale.
func (cd *Data) AxisRange() (float64, float64) {
	if len(cd.Y) == 0 {
		return 0, 0
	}
	min, max := floats.Min(cd.Y), floats.Max(cd.Y)
	if min == max {
		return min - 0.01, max + 0.01
	}
	return min, max
}
