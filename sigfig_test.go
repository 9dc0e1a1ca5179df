package osgrid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tzneal/osgrid"
)

func TestSignificantFigures(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{50.84609, 7},
		{-0.1424094, 7},
		{530760, 5},
		{106880, 5},
		{44760, 4},
		{123.456, 6},
		{1000, 1},
		{0.001, 1},
		{0, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, osgrid.SignificantFigures(tc.in), "significant figures of %v", tc.in)
	}
}

func TestSetSignificantFigures(t *testing.T) {
	tests := []struct {
		in   float64
		n    int
		want float64
	}{
		{50.84609123, 7, 50.84609},
		{0.0012345, 3, 0.00123},
		{1234.5, 4, 1234},
		{1235.5, 4, 1236},
		{2.5, 1, 2},
		{-2.5, 1, -2},
		{3.5, 1, 4},
		{106885, 5, 106880},
		{44765, 4, 44760},
		{426625, 5, 426620},
		{50.846085, 7, 50.84608},
		{530759, 5, 530760},
		{54.979808, 7, 54.97981},
		{42, 5, 42},
		{0, 5, 0},
		{17.3, 0, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, osgrid.SetSignificantFigures(tc.in, tc.n), "%v to %d figures", tc.in, tc.n)
	}
	assert.True(t, math.IsNaN(osgrid.SetSignificantFigures(math.NaN(), 3)))
}

func TestSetSignificantFiguresIsStable(t *testing.T) {
	for _, v := range []float64{50.84609, -0.1439875, 426620, 0.000123456789, 98765.4321} {
		for n := 1; n <= 10; n++ {
			once := osgrid.SetSignificantFigures(v, n)
			if twice := osgrid.SetSignificantFigures(once, n); once != twice {
				t.Fatalf("rounding %v to %d figures is not stable: %v then %v", v, n, once, twice)
			}
			if got := osgrid.SignificantFigures(once); got > n {
				t.Fatalf("%v rounded to %d figures has %d", v, n, got)
			}
		}
	}
}
