package osgrid

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// AngleUnit is the unit of a coordinate's latitude and longitude.
type AngleUnit int

// Angular units
const (
	Degrees AngleUnit = iota
	Radians
)

func (u AngleUnit) String() string {
	switch u {
	case Degrees:
		return "degrees"
	case Radians:
		return "radians"
	}
	return fmt.Sprintf("AngleUnit(%d)", int(u))
}

// ParseAngleUnit parses "degrees" or "radians", also accepting "deg" and "rad".
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "degrees", "deg":
		return Degrees, nil
	case "radians", "rad":
		return Radians, nil
	}
	return 0, errors.Wrapf(ErrInvalidParameter, "unknown angle unit %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (u AngleUnit) MarshalText() ([]byte, error) {
	if u != Degrees && u != Radians {
		return nil, errors.Wrapf(ErrInvalidParameter, "angle unit %d", int(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *AngleUnit) UnmarshalText(text []byte) error {
	v, err := ParseAngleUnit(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// Coordinate is a geodetic position on a datum. Height is in meters above
// the datum's ellipsoid. Coordinates are values; every conversion returns a
// new one.
type Coordinate struct {
	Lat    float64   `json:"lat" yaml:"lat"`
	Lon    float64   `json:"lon" yaml:"lon"`
	Height float64   `json:"height" yaml:"height"`
	Unit   AngleUnit `json:"unit" yaml:"unit"`
	Datum  Datum     `json:"datum" yaml:"datum"`
}

// NewCoordinate constructs a coordinate.
func NewCoordinate(lat, lon, height float64, unit AngleUnit, datum Datum) Coordinate {
	return Coordinate{Lat: lat, Lon: lon, Height: height, Unit: unit, Datum: datum}
}

// CoordinateFromLatLng builds a coordinate in degrees from an s2.LatLng.
func CoordinateFromLatLng(ll s2.LatLng, height float64, datum Datum) Coordinate {
	return Coordinate{
		Lat:    radToDeg(ll.Lat.Radians()),
		Lon:    radToDeg(ll.Lng.Radians()),
		Height: height,
		Unit:   Degrees,
		Datum:  datum,
	}
}

// LatLng returns the latitude and longitude of c as an s2.LatLng. The height
// and datum are dropped.
func (c Coordinate) LatLng() s2.LatLng {
	lat, lon := c.Lat, c.Lon
	if c.Unit == Degrees {
		lat, lon = degToRad(lat), degToRad(lon)
	}
	return s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lon)}
}

func degToRad(d float64) float64 {
	return (d / 360) * (2 * math.Pi)
}

func radToDeg(r float64) float64 {
	return (r / (2 * math.Pi)) * 360
}

// ChangeAngularUnit returns c with its latitude and longitude expressed in
// unit. Height and datum are unchanged.
func ChangeAngularUnit(c Coordinate, unit AngleUnit) (Coordinate, error) {
	switch {
	case c.Unit == unit && (unit == Degrees || unit == Radians):
		return c, nil
	case c.Unit == Degrees && unit == Radians:
		c.Lat, c.Lon = degToRad(c.Lat), degToRad(c.Lon)
	case c.Unit == Radians && unit == Degrees:
		c.Lat, c.Lon = radToDeg(c.Lat), radToDeg(c.Lon)
	default:
		return Coordinate{}, errors.Wrapf(ErrUnsupportedConversion, "angle unit %s to %s", c.Unit, unit)
	}
	c.Unit = unit
	return c, nil
}

// Equal reports whether every field of c and o is identical.
func (c Coordinate) Equal(o Coordinate) bool {
	return c == o
}

// TolerantEqual reports whether c and o match once each field of both is
// rounded to the smaller of their two significant figure counts. Unit and
// datum must match exactly.
func (c Coordinate) TolerantEqual(o Coordinate) bool {
	return c.alignedWith(o).Equal(o.alignedWith(c))
}

// LooseEqual is TolerantEqual with one more significant figure discarded
// from every field after alignment. It absorbs rounding in the final digit.
func (c Coordinate) LooseEqual(o Coordinate) bool {
	return c.alignedWith(o).reduced().Equal(o.alignedWith(c).reduced())
}

func (c Coordinate) alignedWith(o Coordinate) Coordinate {
	c.Lat, _ = alignedFigures(c.Lat, o.Lat)
	c.Lon, _ = alignedFigures(c.Lon, o.Lon)
	c.Height, _ = alignedFigures(c.Height, o.Height)
	return c
}

func (c Coordinate) reduced() Coordinate {
	c.Lat = reducedFigures(c.Lat)
	c.Lon = reducedFigures(c.Lon)
	c.Height = reducedFigures(c.Height)
	return c
}

// AlignSignificantFigures returns c with each field rounded so that it
// carries no more significant figures than the same field of src.
func (c Coordinate) AlignSignificantFigures(src Coordinate) Coordinate {
	c.Lat = alignDown(c.Lat, src.Lat)
	c.Lon = alignDown(c.Lon, src.Lon)
	c.Height = alignDown(c.Height, src.Height)
	return c
}

// WithSignificantFigures returns c with every field rounded to n
// significant figures.
func (c Coordinate) WithSignificantFigures(n int) Coordinate {
	c.Lat = SetSignificantFigures(c.Lat, n)
	c.Lon = SetSignificantFigures(c.Lon, n)
	c.Height = SetSignificantFigures(c.Height, n)
	return c
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%s(%g, %g, %gm %s)", c.Datum, c.Lat, c.Lon, c.Height, c.Unit)
}
