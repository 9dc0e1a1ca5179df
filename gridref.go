package osgrid

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// GridReference is a position on the national grid in whole meters east
// and north of the false origin.
type GridReference struct {
	Easting  float64 `json:"easting" yaml:"easting"`
	Northing float64 `json:"northing" yaml:"northing"`
}

const (
	gridSquare     = 100000.0 // side of a lettered square, meters
	gridMaxEastSq  = 6        // squares east of the false origin covered by letters
	gridMaxNorthSq = 12
	gridMaxDigits  = 10
)

// ToGeodetic converts g to an OSGB36 coordinate; see the package level
// ToGeodetic.
func (g GridReference) ToGeodetic() (Coordinate, error) {
	return ToGeodetic(g)
}

// Equal reports whether both axes of g and o are identical.
func (g GridReference) Equal(o GridReference) bool {
	return g == o
}

// TolerantEqual reports whether g and o match once each axis is rounded to
// the smaller of the two significant figure counts.
func (g GridReference) TolerantEqual(o GridReference) bool {
	return g.alignedWith(o).Equal(o.alignedWith(g))
}

// LooseEqual is TolerantEqual with one more significant figure dropped from
// each axis after alignment.
func (g GridReference) LooseEqual(o GridReference) bool {
	return g.alignedWith(o).reduced().Equal(o.alignedWith(g).reduced())
}

func (g GridReference) alignedWith(o GridReference) GridReference {
	g.Easting, _ = alignedFigures(g.Easting, o.Easting)
	g.Northing, _ = alignedFigures(g.Northing, o.Northing)
	return g
}

func (g GridReference) reduced() GridReference {
	g.Easting = reducedFigures(g.Easting)
	g.Northing = reducedFigures(g.Northing)
	return g
}

// String returns the numeric form "easting,northing", which
// ParseGridReference accepts.
func (g GridReference) String() string {
	return fmt.Sprintf("%.0f,%.0f", g.Easting, g.Northing)
}

// Format renders g with its 100km square letters followed by digits/2
// digits of easting and of northing, for example "TQ 30760 06880" for ten
// digits. digits must be even and at most ten; zero renders the letters
// alone.
func (g GridReference) Format(digits int) (string, error) {
	if digits < 0 || digits > gridMaxDigits || digits%2 != 0 {
		return "", errors.Wrapf(ErrInvalidGridReference, "digits must be an even number from 0 to %d, got %d", gridMaxDigits, digits)
	}
	e100k := int(math.Floor(g.Easting / gridSquare))
	n100k := int(math.Floor(g.Northing / gridSquare))
	if e100k < 0 || e100k > gridMaxEastSq || n100k < 0 || n100k > gridMaxNorthSq {
		return "", errors.Wrapf(ErrInvalidGridReference, "%s is outside the lettered grid", g)
	}

	// The first letter picks a 500km square, the second a 100km square
	// inside it. Both grids are 5x5 letters numbered from the north west.
	l1 := (19 - n100k) - (19-n100k)%5 + (e100k+10)/5
	l2 := ((19-n100k)*5)%25 + e100k%5
	var b bytes.Buffer
	b.WriteByte(gridLetter(l1))
	b.WriteByte(gridLetter(l2))
	if digits == 0 {
		return b.String(), nil
	}

	half := digits / 2
	div := math.Pow(10, float64(5-half))
	e := int(math.Floor(math.Mod(g.Easting, gridSquare) / div))
	n := int(math.Floor(math.Mod(g.Northing, gridSquare) / div))
	fmt.Fprintf(&b, " %0*d %0*d", half, e, half, n)
	return b.String(), nil
}

// gridLetter maps 0..24 to a letter, skipping I.
func gridLetter(i int) byte {
	if i > 7 {
		i++
	}
	return byte('A' + i)
}

// gridLetterIndex is the inverse of gridLetter.
func gridLetterIndex(c byte) (int, error) {
	c = byte(unicode.ToUpper(rune(c)))
	if c < 'A' || c > 'Z' || c == 'I' {
		return 0, errors.Wrapf(ErrInvalidGridReference, "invalid grid letter %q", c)
	}
	i := int(c - 'A')
	if i > 7 {
		i--
	}
	return i, nil
}

// ParseGridReference parses either a lettered reference such as
// "TQ 30760 06880", "TQ3076006880" or "TQ 307 068", or a numeric
// "easting,northing" pair. Lettered references with fewer than ten digits
// resolve to the south west corner of the square they name.
func ParseGridReference(s string) (GridReference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GridReference{}, errors.Wrap(ErrInvalidGridReference, "empty grid reference")
	}
	if strings.Contains(s, ",") {
		return parseNumericGridReference(s)
	}
	if len(s) < 2 {
		return GridReference{}, errors.Wrapf(ErrInvalidGridReference, "%q is too short", s)
	}

	l1, err := gridLetterIndex(s[0])
	if err != nil {
		return GridReference{}, err
	}
	l2, err := gridLetterIndex(s[1])
	if err != nil {
		return GridReference{}, err
	}
	e100k := ((l1-2)%5)*5 + l2%5
	n100k := (19 - (l1/5)*5) - l2/5
	if e100k < 0 || e100k > gridMaxEastSq || n100k < 0 || n100k > gridMaxNorthSq {
		return GridReference{}, errors.Wrapf(ErrInvalidGridReference, "%q is outside the lettered grid", s[:2])
	}

	fields := strings.Fields(s[2:])
	var eDigits, nDigits string
	switch len(fields) {
	case 0:
	case 1:
		if len(fields[0])%2 != 0 {
			return GridReference{}, errors.Wrapf(ErrInvalidGridReference, "%q has an odd number of digits", s)
		}
		half := len(fields[0]) / 2
		eDigits, nDigits = fields[0][:half], fields[0][half:]
	case 2:
		eDigits, nDigits = fields[0], fields[1]
	default:
		return GridReference{}, errors.Wrapf(ErrInvalidGridReference, "%q has too many fields", s)
	}
	if len(eDigits) != len(nDigits) || len(eDigits) > gridMaxDigits/2 {
		return GridReference{}, errors.Wrapf(ErrInvalidGridReference, "%q must have the same number of easting and northing digits, at most %d each", s, gridMaxDigits/2)
	}

	e, err := gridDigits(eDigits)
	if err != nil {
		return GridReference{}, errors.Wrapf(err, "easting of %q", s)
	}
	n, err := gridDigits(nDigits)
	if err != nil {
		return GridReference{}, errors.Wrapf(err, "northing of %q", s)
	}
	return GridReference{
		Easting:  float64(e100k)*gridSquare + e,
		Northing: float64(n100k)*gridSquare + n,
	}, nil
}

// gridDigits reads up to five digits as meters within a 100km square,
// padding on the right.
func gridDigits(d string) (float64, error) {
	if d == "" {
		return 0, nil
	}
	for _, r := range d {
		if !unicode.IsDigit(r) {
			return 0, errors.Wrapf(ErrInvalidGridReference, "non-digit %q", r)
		}
	}
	v, err := strconv.Atoi(d + strings.Repeat("0", gridMaxDigits/2-len(d)))
	if err != nil {
		return 0, errors.Wrap(ErrInvalidGridReference, err.Error())
	}
	return float64(v), nil
}

func parseNumericGridReference(s string) (GridReference, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return GridReference{}, errors.Wrapf(ErrInvalidGridReference, "%q is not an easting,northing pair", s)
	}
	e, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return GridReference{}, errors.Wrapf(ErrInvalidGridReference, "easting of %q", s)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return GridReference{}, errors.Wrapf(ErrInvalidGridReference, "northing of %q", s)
	}
	return GridReference{Easting: math.Trunc(e), Northing: math.Trunc(n)}, nil
}
