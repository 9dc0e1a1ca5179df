package osgrid

import (
	"fmt"
	"math"
)

// natGrid and natGridKruger evaluate the national grid on the OSGB36
// ellipsoid. Both are read only after init.
var (
	natGrid       *redfearn
	natGridKruger *krugerGrid
)

func init() {
	for id, e := range ellipsoids {
		if err := e.validate(); err != nil {
			panic(fmt.Sprintf("invalid ellipsoid %s: %s", EllipsoidID(id), err))
		}
	}
	for id, t := range transforms {
		inv, err := transformFor(t.Output, t.Input)
		if err != nil {
			panic(fmt.Sprintf("transform %s has no inverse: %s", TransformID(id), err))
		}
		if !t.Inverse().approxEqual(inv, 1e-12) {
			panic(fmt.Sprintf("transform %s is not the negation of %s->%s", TransformID(id), inv.Input, inv.Output))
		}
	}

	airy, err := DatumOSGB36.Ellipsoid()
	if err != nil {
		panic(fmt.Sprintf("error constructing national grid: %s", err))
	}
	natGrid = newRedfearn(airy)
	natGridKruger = newKrugerGrid(airy)
}

func (t HelmertTransform) approxEqual(o HelmertTransform, tol float64) bool {
	if t.Input != o.Input || t.Output != o.Output {
		return false
	}
	a := [7]float64{t.Tx, t.Ty, t.Tz, t.Rx, t.Ry, t.Rz, t.Scale}
	b := [7]float64{o.Tx, o.Ty, o.Tz, o.Rx, o.Ry, o.Rz, o.Scale}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
