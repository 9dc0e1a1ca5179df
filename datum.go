package osgrid

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Datum identifies the geodetic datum a coordinate is expressed in.
type Datum int

// Supported datums
const (
	DatumWGS84 Datum = iota
	DatumOSGB36
	numDatums
)

var datumNames = [numDatums]string{
	DatumWGS84:  "WGS84",
	DatumOSGB36: "OSGB36",
}

var datumEllipsoids = [numDatums]EllipsoidID{
	DatumWGS84:  EllipsoidWGS84,
	DatumOSGB36: EllipsoidAiry1830,
}

func (d Datum) String() string {
	if !d.valid() {
		return fmt.Sprintf("Datum(%d)", int(d))
	}
	return datumNames[d]
}

func (d Datum) valid() bool {
	return d >= 0 && d < numDatums
}

// Ellipsoid returns the reference ellipsoid the datum is defined on.
func (d Datum) Ellipsoid() (Ellipsoid, error) {
	if !d.valid() {
		return Ellipsoid{}, errors.Wrapf(ErrInvalidParameter, "datum %s", d)
	}
	return LookupEllipsoid(datumEllipsoids[d])
}

// ParseDatum parses a datum name such as "wgs84" or "OSGB36".
func ParseDatum(s string) (Datum, error) {
	for d, name := range datumNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Datum(d), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidParameter, "unknown datum %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Datum) MarshalText() ([]byte, error) {
	if !d.valid() {
		return nil, errors.Wrapf(ErrInvalidParameter, "datum %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Datum) UnmarshalText(text []byte) error {
	v, err := ParseDatum(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
