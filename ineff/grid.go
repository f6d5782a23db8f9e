package ineff

import (
	"errors"
	"math"
)

var InvalidCount = errors.New("invalid chart count")

// ClosestFactors factors a chart count into a near-square (rows, cols)
// grid. Odd counts above 1 are bumped to the next even number, so the
// grid may hold one spare cell the caller leaves blank.
func ClosestFactors(count int) (int, int, error) {
	if count < 0 {
		return 0, 0, InvalidCount
	}
	if count <= 1 {
		return 1, count, nil
	}
	if count%2 != 0 {
		count += 1
	}
	var rows = int(math.Sqrt(float64(count)))
	for count%rows != 0 {
		rows--
	}
	return rows, count / rows, nil
}
