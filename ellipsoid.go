package osgrid

import (
	"fmt"

	"github.com/pkg/errors"
)

// EllipsoidID names one of the reference ellipsoids known to the package.
type EllipsoidID int

// Reference ellipsoids
const (
	EllipsoidWGS84 EllipsoidID = iota
	EllipsoidAiry1830
	EllipsoidAiry1849
	numEllipsoids
)

// Ellipsoid holds the shape of a reference ellipsoid. Axes are in meters.
type Ellipsoid struct {
	SemiMajorAxis float64
	SemiMinorAxis float64
	Flattening    float64
}

var ellipsoids = [numEllipsoids]Ellipsoid{
	EllipsoidWGS84:    {SemiMajorAxis: 6378137, SemiMinorAxis: 6356752.3142, Flattening: 1 / 298.257223563},
	EllipsoidAiry1830: {SemiMajorAxis: 6377563.396, SemiMinorAxis: 6356256.910, Flattening: 1 / 299.3249646},
	EllipsoidAiry1849: {SemiMajorAxis: 6377340.189, SemiMinorAxis: 6356034.447, Flattening: 1 / 299.3249646},
}

var ellipsoidNames = [numEllipsoids]string{
	EllipsoidWGS84:    "WGS84",
	EllipsoidAiry1830: "Airy1830",
	EllipsoidAiry1849: "Airy1849",
}

func (id EllipsoidID) String() string {
	if id < 0 || id >= numEllipsoids {
		return fmt.Sprintf("EllipsoidID(%d)", int(id))
	}
	return ellipsoidNames[id]
}

// LookupEllipsoid returns the parameters of the named ellipsoid.
func LookupEllipsoid(id EllipsoidID) (Ellipsoid, error) {
	if id < 0 || id >= numEllipsoids {
		return Ellipsoid{}, errors.Wrapf(ErrInvalidParameter, "ellipsoid %s", id)
	}
	return ellipsoids[id], nil
}

// EccentricitySquared returns e² = (a²-b²)/a².
func (e Ellipsoid) EccentricitySquared() float64 {
	a2 := e.SemiMajorAxis * e.SemiMajorAxis
	return (a2 - e.SemiMinorAxis*e.SemiMinorAxis) / a2
}

// ThirdFlattening returns Helmert's n = (a-b)/(a+b).
func (e Ellipsoid) ThirdFlattening() float64 {
	return (e.SemiMajorAxis - e.SemiMinorAxis) / (e.SemiMajorAxis + e.SemiMinorAxis)
}

func (e Ellipsoid) validate() error {
	if e.SemiMinorAxis <= 0 {
		return errors.New("semi-minor axis must be greater than zero")
	}
	if e.SemiMajorAxis <= e.SemiMinorAxis {
		return errors.New("semi-major axis must be greater than the semi-minor axis")
	}
	return nil
}
