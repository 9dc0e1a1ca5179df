package osgrid

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/pkg/errors"
)

// TransformID names a registered datum transformation.
type TransformID int

// Registered datum transformations
const (
	TransformWGS84ToOSGB36 TransformID = iota
	TransformOSGB36ToWGS84
	numTransforms
)

func (id TransformID) String() string {
	switch id {
	case TransformWGS84ToOSGB36:
		return "WGS84->OSGB36"
	case TransformOSGB36ToWGS84:
		return "OSGB36->WGS84"
	}
	return fmt.Sprintf("TransformID(%d)", int(id))
}

// HelmertTransform holds the seven parameters of a similarity transform
// between two geocentric Cartesian frames.
type HelmertTransform struct {
	Tx, Ty, Tz float64 // translation, meters
	Rx, Ry, Rz float64 // rotation, arc-seconds
	Scale      float64 // parts per million
	Input      Datum
	Output     Datum
}

var transforms = [numTransforms]HelmertTransform{
	TransformWGS84ToOSGB36: {
		Tx: -446.448, Ty: 125.157, Tz: -542.060,
		Rx: -0.1502, Ry: -0.2470, Rz: -0.8421,
		Scale: 20.4894,
		Input: DatumWGS84, Output: DatumOSGB36,
	},
	TransformOSGB36ToWGS84: {
		Tx: 446.448, Ty: -125.157, Tz: 542.060,
		Rx: 0.1502, Ry: 0.2470, Rz: 0.8421,
		Scale: -20.4894,
		Input: DatumOSGB36, Output: DatumWGS84,
	},
}

// LookupTransform returns the parameters of a registered transform.
func LookupTransform(id TransformID) (HelmertTransform, error) {
	if id < 0 || id >= numTransforms {
		return HelmertTransform{}, errors.Wrapf(ErrInvalidParameter, "transform %s", id)
	}
	return transforms[id], nil
}

// transformFor finds the registered transform from one datum to another.
func transformFor(from, to Datum) (HelmertTransform, error) {
	for _, t := range transforms {
		if t.Input == from && t.Output == to {
			return t, nil
		}
	}
	return HelmertTransform{}, errors.Wrapf(ErrUnsupportedConversion, "datum %s to %s", from, to)
}

// Inverse returns the transform running in the opposite direction: every
// parameter negated and the datums swapped.
func (t HelmertTransform) Inverse() HelmertTransform {
	return HelmertTransform{
		Tx: -t.Tx, Ty: -t.Ty, Tz: -t.Tz,
		Rx: -t.Rx, Ry: -t.Ry, Rz: -t.Rz,
		Scale: -t.Scale,
		Input: t.Output, Output: t.Input,
	}
}

func arcSeconds(v float64) float64 {
	return (s1.Angle(v/3600) * s1.Degree).Radians()
}

// Apply maps p into the output frame. Rotations enter linearly, which is
// only valid for the sub arc-second angles of real datum pairs.
func (t HelmertTransform) Apply(p r3.Vector) r3.Vector {
	rx, ry, rz := arcSeconds(t.Rx), arcSeconds(t.Ry), arcSeconds(t.Rz)
	s := t.Scale/1e6 + 1
	return r3.Vector{
		X: t.Tx + p.X*s - p.Y*rz + p.Z*ry,
		Y: t.Ty + p.X*rz + p.Y*s - p.Z*rx,
		Z: t.Tz - p.X*ry + p.Y*rx + p.Z*s,
	}
}

// toCartesian converts a geodetic position in radians on e to geocentric
// Cartesian coordinates in meters.
func toCartesian(lat, lon, height float64, e Ellipsoid) r3.Vector {
	sinPhi, cosPhi := math.Sincos(lat)
	sinLambda, cosLambda := math.Sincos(lon)
	eSq := e.EccentricitySquared()
	nu := e.SemiMajorAxis / math.Sqrt(1-eSq*sinPhi*sinPhi)
	return r3.Vector{
		X: (nu + height) * cosPhi * cosLambda,
		Y: (nu + height) * cosPhi * sinLambda,
		Z: ((1-eSq)*nu + height) * sinPhi,
	}
}

// fromCartesian converts geocentric Cartesian coordinates to a geodetic
// position in radians on e. Latitude is refined until successive estimates
// differ by less than 4/a radians, roughly four meters on the ground.
func fromCartesian(p r3.Vector, e Ellipsoid) (lat, lon, height float64, err error) {
	a := e.SemiMajorAxis
	precision := 4 / a
	eSq := e.EccentricitySquared()

	rho := math.Sqrt(p.X*p.X + p.Y*p.Y)
	phi := math.Atan2(p.Z, rho*(1-eSq))
	phiP := 2 * math.Pi
	var nu float64
	for i := 0; math.Abs(phi-phiP) > precision; i++ {
		if i == maxIterations {
			return 0, 0, 0, errors.Wrapf(ErrNoConvergence, "geodetic latitude after %d iterations", i)
		}
		sinPhi := math.Sin(phi)
		nu = a / math.Sqrt(1-eSq*sinPhi*sinPhi)
		phiP = phi
		phi = math.Atan2(p.Z+eSq*nu*sinPhi, rho)
	}

	lon = math.Atan2(p.Y, p.X)
	height = rho/math.Cos(phi) - nu
	return phi, lon, height, nil
}

// TransformDatum converts c to the target datum with the registered Helmert
// transform for that direction. The result is in degrees and carries no
// more significant figures per field than c. Only WGS84->OSGB36 and
// OSGB36->WGS84 are registered; any other pair, including an identity
// request, returns ErrUnsupportedConversion.
func TransformDatum(c Coordinate, target Datum) (Coordinate, error) {
	t, err := transformFor(c.Datum, target)
	if err != nil {
		return Coordinate{}, err
	}
	from, err := t.Input.Ellipsoid()
	if err != nil {
		return Coordinate{}, err
	}
	to, err := t.Output.Ellipsoid()
	if err != nil {
		return Coordinate{}, err
	}
	rad, err := ChangeAngularUnit(c, Radians)
	if err != nil {
		return Coordinate{}, err
	}

	p := t.Apply(toCartesian(rad.Lat, rad.Lon, rad.Height, from))
	lat, lon, height, err := fromCartesian(p, to)
	if err != nil {
		return Coordinate{}, errors.Wrapf(err, "transform %s to %s", c.Datum, target)
	}

	out := Coordinate{
		Lat:    radToDeg(lat),
		Lon:    radToDeg(lon),
		Height: height,
		Unit:   Degrees,
		Datum:  t.Output,
	}
	return out.AlignSignificantFigures(c), nil
}
