package osgrid

import (
	"math"

	"github.com/pkg/errors"
)

// National grid projection constants.
const (
	natGridScaleFactor   = 0.9996012717 // scale factor on the central meridian
	natGridOriginLat     = 49.0         // true origin, degrees
	natGridOriginLon     = -2.0         // true origin, degrees
	natGridFalseEasting  = 400000.0     // grid coordinates of the true origin, meters
	natGridFalseNorthing = -100000.0

	// meridional arc residual at which the inverse projection stops, 0.01mm
	natGridNorthingTolerance = 0.00001

	// geodetic results of the inverse projection are rounded to this many
	// significant figures
	natGridFigures = 7
)

// redfearn evaluates Redfearn's series for the national grid Transverse
// Mercator projection on one ellipsoid.
type redfearn struct {
	a, b       float64 // semi-axes
	eSq        float64
	n, n2, n3  float64
	f0         float64
	lat0, lon0 float64 // true origin in radians
	e0, n0     float64 // false easting and northing
}

func newRedfearn(e Ellipsoid) *redfearn {
	n := e.ThirdFlattening()
	return &redfearn{
		a:    e.SemiMajorAxis,
		b:    e.SemiMinorAxis,
		eSq:  1 - (e.SemiMinorAxis*e.SemiMinorAxis)/(e.SemiMajorAxis*e.SemiMajorAxis),
		n:    n,
		n2:   n * n,
		n3:   n * n * n,
		f0:   natGridScaleFactor,
		lat0: degToRad(natGridOriginLat),
		lon0: degToRad(natGridOriginLon),
		e0:   natGridFalseEasting,
		n0:   natGridFalseNorthing,
	}
}

// meridionalArc returns the scaled meridian distance from the true origin
// latitude to lat.
func (r *redfearn) meridionalArc(lat float64) float64 {
	dLat := lat - r.lat0
	sLat := lat + r.lat0
	ma := (1 + r.n + (5.0/4.0)*r.n2 + (5.0/4.0)*r.n3) * dLat
	mb := (3*r.n + 3*r.n*r.n + (21.0/8.0)*r.n3) * math.Sin(dLat) * math.Cos(sLat)
	mc := ((15.0/8.0)*r.n2 + (15.0/8.0)*r.n3) * math.Sin(2*dLat) * math.Cos(2*sLat)
	md := (35.0 / 24.0) * r.n3 * math.Sin(3*dLat) * math.Cos(3*sLat)
	return r.b * r.f0 * (ma - mb + mc - md)
}

// radii returns the transverse (nu) and meridional (rho) radii of
// curvature at the latitude whose sine is sinLat, scaled by F0, and
// eta² = nu/rho - 1.
func (r *redfearn) radii(sinLat float64) (nu, rho, eta2 float64) {
	w := 1 - r.eSq*sinLat*sinLat
	nu = r.a * r.f0 / math.Sqrt(w)
	rho = r.a * r.f0 * (1 - r.eSq) / math.Pow(w, 1.5)
	return nu, rho, nu/rho - 1
}

// forward projects a position in radians to unrounded grid coordinates.
func (r *redfearn) forward(lat, lon float64) (easting, northing float64) {
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	nu, rho, eta2 := r.radii(sinLat)
	m := r.meridionalArc(lat)

	cos3lat := cosLat * cosLat * cosLat
	cos5lat := cos3lat * cosLat * cosLat
	tan2lat := math.Tan(lat) * math.Tan(lat)
	tan4lat := tan2lat * tan2lat

	i := m + r.n0
	ii := (nu / 2) * sinLat * cosLat
	iii := (nu / 24) * sinLat * cos3lat * (5 - tan2lat + 9*eta2)
	iiia := (nu / 720) * sinLat * cos5lat * (61 - 58*tan2lat + tan4lat)
	iv := nu * cosLat
	v := (nu / 6) * cos3lat * (nu/rho - tan2lat)
	vi := (nu / 120) * cos5lat * (5 - 18*tan2lat + tan4lat + 14*eta2 - 58*tan2lat*eta2)

	dLon := lon - r.lon0
	dLon2 := dLon * dLon
	dLon3 := dLon2 * dLon
	dLon4 := dLon3 * dLon
	dLon5 := dLon4 * dLon
	dLon6 := dLon5 * dLon

	northing = i + ii*dLon2 + iii*dLon4 + iiia*dLon6
	easting = r.e0 + iv*dLon + v*dLon3 + vi*dLon5
	return easting, northing
}

// footpointLatitude inverts the meridional arc: starting at the true
// origin it steps the latitude by the remaining northing until the arc
// matches to within natGridNorthingTolerance.
func (r *redfearn) footpointLatitude(northing float64) (float64, error) {
	lat := r.lat0
	m := 0.0
	for i := 0; ; i++ {
		if i == maxIterations {
			return 0, errors.Wrapf(ErrNoConvergence, "meridional arc for northing %g after %d iterations", northing, i)
		}
		lat = (northing-r.n0-m)/(r.a*r.f0) + lat
		m = r.meridionalArc(lat)
		if math.Abs(northing-r.n0-m) < natGridNorthingTolerance {
			return lat, nil
		}
	}
}

// inverse recovers a position in radians from grid coordinates.
func (r *redfearn) inverse(easting, northing float64) (lat, lon float64, err error) {
	lat, err = r.footpointLatitude(northing)
	if err != nil {
		return 0, 0, err
	}

	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	nu, rho, eta2 := r.radii(sinLat)

	tanLat := math.Tan(lat)
	tan2lat := tanLat * tanLat
	tan4lat := tan2lat * tan2lat
	tan6lat := tan4lat * tan2lat
	secLat := 1 / cosLat
	nu3 := nu * nu * nu
	nu5 := nu3 * nu * nu
	nu7 := nu5 * nu * nu

	vii := tanLat / (2 * rho * nu)
	viii := tanLat / (24 * rho * nu3) * (5 + 3*tan2lat + eta2 - 9*tan2lat*eta2)
	ix := tanLat / (720 * rho * nu5) * (61 + 90*tan2lat + 45*tan4lat)
	x := secLat / nu
	xi := secLat / (6 * nu3) * (nu/rho + 2*tan2lat)
	xii := secLat / (120 * nu5) * (5 + 28*tan2lat + 24*tan4lat)
	xiia := secLat / (5040 * nu7) * (61 + 662*tan2lat + 1320*tan4lat + 720*tan6lat)

	dE := easting - r.e0
	dE2 := dE * dE
	dE3 := dE2 * dE
	dE4 := dE2 * dE2
	dE5 := dE3 * dE2
	dE6 := dE4 * dE2
	dE7 := dE5 * dE2

	lat = lat - vii*dE2 + viii*dE4 - ix*dE6
	lon = r.lon0 + x*dE - xi*dE3 + xii*dE5 - xiia*dE7
	return lat, lon, nil
}

// ToGridReference projects c onto the national grid. Coordinates on any
// datum other than OSGB36 are first moved to OSGB36 with TransformDatum.
// Easting and northing are truncated toward zero to whole meters.
func ToGridReference(c Coordinate) (GridReference, error) {
	if c.Datum != DatumOSGB36 {
		var err error
		c, err = TransformDatum(c, DatumOSGB36)
		if err != nil {
			return GridReference{}, err
		}
	}
	rad, err := ChangeAngularUnit(c, Radians)
	if err != nil {
		return GridReference{}, err
	}
	easting, northing := natGrid.forward(rad.Lat, rad.Lon)
	return GridReference{Easting: math.Trunc(easting), Northing: math.Trunc(northing)}, nil
}

// ToGeodetic converts a national grid reference to an OSGB36 coordinate in
// degrees, rounded to seven significant figures.
func ToGeodetic(g GridReference) (Coordinate, error) {
	lat, lon, err := natGrid.inverse(g.Easting, g.Northing)
	if err != nil {
		return Coordinate{}, err
	}
	c := Coordinate{
		Lat:   radToDeg(lat),
		Lon:   radToDeg(lon),
		Unit:  Degrees,
		Datum: DatumOSGB36,
	}
	return c.WithSignificantFigures(natGridFigures), nil
}
