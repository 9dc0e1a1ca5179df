package osgrid

import (
	"math"

	"github.com/pkg/errors"
)

const krugerTerms = 6

// krugerTerm is num/den * n^pow.
type krugerTerm struct {
	num, den float64
	pow      int
}

// Series coefficients of the 2k-th harmonic, k = 1..6, as polynomials in
// Helmert's n. alpha maps conformal to rectifying latitude, beta the
// reverse.
var krugerAlpha = [krugerTerms][]krugerTerm{
	{{-18975107, 50803200, 8}, {72161, 387072, 7}, {7891, 37800, 6}, {-127, 288, 5}, {41, 180, 4}, {5, 16, 3}, {-2, 3, 2}, {1, 2, 1}},
	{{148003883, 174182400, 8}, {13769, 28800, 7}, {-1983433, 1935360, 6}, {281, 630, 5}, {557, 1440, 4}, {-3, 5, 3}, {13, 48, 2}},
	{{79682431, 79833600, 8}, {-67102379, 29030400, 7}, {167603, 181440, 6}, {15061, 26880, 5}, {-103, 140, 4}, {61, 240, 3}},
	{{-40176129013, 7664025600, 8}, {97445, 49896, 7}, {6601661, 7257600, 6}, {-179, 168, 5}, {49561, 161280, 4}},
	{{2605413599, 622702080, 8}, {14644087, 9123840, 7}, {-3418889, 1995840, 6}, {34729, 80640, 5}},
	{{175214326799, 58118860800, 8}, {-30705481, 10378368, 7}, {212378941, 319334400, 6}},
}

var krugerBeta = [krugerTerms][]krugerTerm{
	{{-7944359, 67737600, 8}, {5406467, 38707200, 7}, {-96199, 604800, 6}, {81, 512, 5}, {1, 360, 4}, {-37, 96, 3}, {2, 3, 2}, {-1, 2, 1}},
	{{-24749483, 348364800, 8}, {-51841, 1209600, 7}, {1118711, 3870720, 6}, {-46, 105, 5}, {437, 1440, 4}, {-1, 15, 3}, {-1, 48, 2}},
	{{6457463, 17740800, 8}, {-9261899, 58060800, 7}, {-5569, 90720, 6}, {209, 4480, 5}, {37, 840, 4}, {-17, 480, 3}},
	{{-324154477, 7664025600, 8}, {-466511, 2494800, 7}, {830251, 7257600, 6}, {11, 504, 5}, {-4397, 161280, 4}},
	{{-22894433, 124540416, 8}, {8005831, 63866880, 7}, {108847, 3991680, 6}, {-4583, 161280, 5}},
	{{2204645983, 12915302400, 8}, {16363163, 518918400, 7}, {-20648693, 638668800, 6}},
}

func evalKruger(terms []krugerTerm, n float64) float64 {
	coeff := 0.0
	for _, t := range terms {
		coeff += t.num * math.Pow(n, float64(t.pow)) / t.den
	}
	return coeff
}

// krugerGrid is the national grid evaluated with the Krüger n-series,
// accurate to well under a millimeter across Great Britain. It serves as a
// reference for the Redfearn series, which truncates earlier.
type krugerGrid struct {
	eps      float64 // eccentricity
	k0R4     float64 // F0 * R4, R4 the meridional isoperimetric radius
	alpha    [krugerTerms]float64
	beta     [krugerTerms]float64
	lon0     float64
	eastOff  float64 // grid easting of the projection plane origin
	northOff float64
}

func newKrugerGrid(e Ellipsoid) *krugerGrid {
	f := e.Flattening
	n := f / (2 - f)
	n2 := n * n
	n4 := n2 * n2
	n6 := n4 * n2
	n8 := n4 * n4
	n10 := n8 * n2
	r4oa := (1 + n2/4 + n4/64 + n6/256 + 25*n8/16384 + 49*n10/65536) / (1 + n)

	k := &krugerGrid{
		eps:  math.Sqrt(2*f - f*f),
		k0R4: r4oa * natGridScaleFactor * e.SemiMajorAxis,
		lon0: degToRad(natGridOriginLon),
	}
	for i := 0; i < krugerTerms; i++ {
		k.alpha[i] = evalKruger(krugerAlpha[i], n)
		k.beta[i] = evalKruger(krugerBeta[i], n)
	}

	// The true origin sits off the projection plane origin (the equator on
	// the central meridian), so shift the false offsets by its plane
	// coordinates.
	_, originNorthing := k.plane(degToRad(natGridOriginLat), k.lon0)
	k.eastOff = natGridFalseEasting
	k.northOff = natGridFalseNorthing - originNorthing
	return k
}

// plane maps a geodetic position in radians to scaled plane coordinates
// relative to the equator on the central meridian.
func (k *krugerGrid) plane(lat, lon float64) (x, y float64) {
	lambda := lon - k.lon0
	sinPhi, cosPhi := math.Sin(lat), math.Cos(lat)

	// geodetic to conformal latitude
	p := math.Exp(k.eps * math.Atanh(k.eps*sinPhi))
	part1 := (1 + sinPhi) / p
	part2 := (1 - sinPhi) * p
	denom := part1 + part2
	cosChi := 2 * cosPhi / denom
	sinChi := (part1 - part2) / denom

	u := math.Atanh(cosChi * math.Sin(lambda))
	v := math.Atan2(sinChi, cosChi*math.Cos(lambda))

	x, y = u, v
	for i := krugerTerms - 1; i >= 0; i-- {
		h := 2 * float64(i+1)
		x += k.alpha[i] * math.Sinh(h*u) * math.Cos(h*v)
		y += k.alpha[i] * math.Cosh(h*u) * math.Sin(h*v)
	}
	return k.k0R4 * x, k.k0R4 * y
}

func (k *krugerGrid) forward(lat, lon float64) (easting, northing float64) {
	x, y := k.plane(lat, lon)
	return k.eastOff + x, k.northOff + y
}

func (k *krugerGrid) inverse(easting, northing float64) (lat, lon float64, err error) {
	xStar := (easting - k.eastOff) / k.k0R4
	yStar := (northing - k.northOff) / k.k0R4

	u, v := xStar, yStar
	for i := krugerTerms - 1; i >= 0; i-- {
		h := 2 * float64(i+1)
		u += k.beta[i] * math.Sinh(h*xStar) * math.Cos(h*yStar)
		v += k.beta[i] * math.Cosh(h*xStar) * math.Sin(h*yStar)
	}

	lambda := math.Atan2(math.Sinh(u), math.Cos(v))
	sinChi := math.Sin(v) / math.Cosh(u)
	lat, err = conformalToGeodetic(sinChi, k.eps)
	if err != nil {
		return 0, 0, err
	}
	return lat, k.lon0 + lambda, nil
}

// conformalToGeodetic iterates sin(phi) from sin(chi) until it settles.
func conformalToGeodetic(sinChi, e float64) (float64, error) {
	sOld := 1.0e99
	s := sinChi
	onePlusSinChi := 1.0 + sinChi
	oneMinusSinChi := 1.0 - sinChi

	for i := 0; i < maxIterations; i++ {
		p := math.Exp(e * math.Atanh(e*s))
		pSq := p * p
		s = (onePlusSinChi*pSq - oneMinusSinChi) / (onePlusSinChi*pSq + oneMinusSinChi)
		if math.Abs(s-sOld) < 1.0e-12 {
			return math.Asin(s), nil
		}
		sOld = s
	}
	return 0, errors.Wrap(ErrNoConvergence, "conformal latitude")
}

// ToGridReferenceKruger projects c onto the national grid with the Krüger
// series instead of Redfearn's. Datum handling and truncation match
// ToGridReference.
func ToGridReferenceKruger(c Coordinate) (GridReference, error) {
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
	easting, northing := natGridKruger.forward(rad.Lat, rad.Lon)
	return GridReference{Easting: math.Trunc(easting), Northing: math.Trunc(northing)}, nil
}

// ToGeodeticKruger is ToGeodetic evaluated with the Krüger series.
func ToGeodeticKruger(g GridReference) (Coordinate, error) {
	lat, lon, err := natGridKruger.inverse(g.Easting, g.Northing)
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
