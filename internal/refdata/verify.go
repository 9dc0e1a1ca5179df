package refdata

import (
	"math"

	"github.com/tzneal/osgrid"
)

// Check is the outcome of one conversion against its reference value.
type Check struct {
	Name     string `json:"name"`
	Expected string `json:"expected"`
	Got      string `json:"got,omitempty"`
	Pass     bool   `json:"pass"`
	Error    string `json:"error,omitempty"`
}

// Result collects the checks run for one reference point.
type Result struct {
	Point  Point   `json:"point"`
	Checks []Check `json:"checks"`
	// KrugerResidual is the distance in meters between the Redfearn and
	// Krüger projections of the point's OSGB36 position, after truncation.
	// It is nil when either projection failed.
	KrugerResidual *float64 `json:"krugerResidual,omitempty"`
}

// Passed reports whether every check passed.
func (r Result) Passed() bool {
	for _, c := range r.Checks {
		if !c.Pass {
			return false
		}
	}
	return true
}

// Verify runs every cross conversion for each point in the dataset.
// Values are compared with LooseEqual, which absorbs rounding in the final
// significant figure of the reference data.
func Verify(d *Dataset) []Result {
	results := make([]Result, 0, len(d.Points))
	for _, p := range d.Points {
		results = append(results, VerifyPoint(p))
	}
	return results
}

// VerifyPoint runs every cross conversion for p.
func VerifyPoint(p Point) Result {
	r := Result{Point: p}
	r.Checks = append(r.Checks,
		coordinateCheck("OSGB36->WGS84", p.WGS84, func() (osgrid.Coordinate, error) {
			return osgrid.TransformDatum(p.OSGB36, osgrid.DatumWGS84)
		}),
		coordinateCheck("WGS84->OSGB36", p.OSGB36, func() (osgrid.Coordinate, error) {
			return osgrid.TransformDatum(p.WGS84, osgrid.DatumOSGB36)
		}),
		gridCheck("OSGB36->grid", p.Grid, func() (osgrid.GridReference, error) {
			return osgrid.ToGridReference(p.OSGB36)
		}),
		gridCheck("WGS84->grid", p.Grid, func() (osgrid.GridReference, error) {
			return osgrid.ToGridReference(p.WGS84)
		}),
		coordinateCheck("grid->OSGB36", p.OSGB36, func() (osgrid.Coordinate, error) {
			return osgrid.ToGeodetic(p.Grid)
		}),
	)

	redfearn, err1 := osgrid.ToGridReference(p.OSGB36)
	kruger, err2 := osgrid.ToGridReferenceKruger(p.OSGB36)
	if err1 == nil && err2 == nil {
		residual := math.Hypot(redfearn.Easting-kruger.Easting, redfearn.Northing-kruger.Northing)
		r.KrugerResidual = &residual
	}
	return r
}

func coordinateCheck(name string, want osgrid.Coordinate, convert func() (osgrid.Coordinate, error)) Check {
	c := Check{Name: name, Expected: want.String()}
	got, err := convert()
	if err != nil {
		c.Error = err.Error()
		return c
	}
	c.Got = got.String()
	c.Pass = want.LooseEqual(got)
	return c
}

func gridCheck(name string, want osgrid.GridReference, convert func() (osgrid.GridReference, error)) Check {
	c := Check{Name: name, Expected: want.String()}
	got, err := convert()
	if err != nil {
		c.Error = err.Error()
		return c
	}
	c.Got = got.String()
	c.Pass = want.LooseEqual(got)
	return c
}
