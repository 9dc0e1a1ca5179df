// Package render writes conversion results as text, JSON or GeoJSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"github.com/tzneal/osgrid"
	"github.com/tzneal/osgrid/internal/refdata"
)

// Format selects an output encoding.
type Format string

// Output formats
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatGeoJSON:
		return f, nil
	}
	return "", errors.Errorf("unknown output format %q, expected text, json or geojson", s)
}

// GridResult is a grid reference with its lettered form.
type GridResult struct {
	osgrid.GridReference
	Letters string `json:"letters,omitempty"`
}

// NewGridResult pairs g with its lettered form at the given precision. The
// letters are left empty when g lies outside the lettered squares.
func NewGridResult(g osgrid.GridReference, digits int) GridResult {
	letters, _ := g.Format(digits)
	return GridResult{GridReference: g, Letters: letters}
}

// point returns the GeoJSON position of c. GeoJSON positions are WGS84
// longitude, latitude in degrees, so other datums are transformed first.
func point(c osgrid.Coordinate) (orb.Point, error) {
	if c.Datum != osgrid.DatumWGS84 {
		var err error
		c, err = osgrid.TransformDatum(c, osgrid.DatumWGS84)
		if err != nil {
			return orb.Point{}, err
		}
	}
	c, err := osgrid.ChangeAngularUnit(c, osgrid.Degrees)
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{c.Lon, c.Lat}, nil
}

// CoordinateFeature returns c as a GeoJSON point feature carrying the
// original coordinate in its properties.
func CoordinateFeature(c osgrid.Coordinate) (*geojson.Feature, error) {
	p, err := point(c)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(p)
	f.Properties["lat"] = c.Lat
	f.Properties["lon"] = c.Lon
	f.Properties["height"] = c.Height
	f.Properties["unit"] = c.Unit.String()
	f.Properties["datum"] = c.Datum.String()
	return f, nil
}

// GridFeature returns g as a GeoJSON point feature.
func GridFeature(g GridResult) (*geojson.Feature, error) {
	c, err := osgrid.ToGeodetic(g.GridReference)
	if err != nil {
		return nil, err
	}
	p, err := point(c)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(p)
	f.Properties["easting"] = g.Easting
	f.Properties["northing"] = g.Northing
	if g.Letters != "" {
		f.Properties["letters"] = g.Letters
	}
	return f, nil
}

// ResultFeature returns a verification result as a GeoJSON feature placed
// at the reference point's WGS84 position.
func ResultFeature(r refdata.Result) (*geojson.Feature, error) {
	p, err := point(r.Point.WGS84)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(p)
	f.Properties["city"] = r.Point.City
	f.Properties["pass"] = r.Passed()
	f.Properties["checks"] = r.Checks
	if r.KrugerResidual != nil {
		f.Properties["krugerResidual"] = *r.KrugerResidual
	}
	return f, nil
}

// Coordinate writes c in format f.
func Coordinate(w io.Writer, f Format, c osgrid.Coordinate) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, c)
	case FormatGeoJSON:
		feature, err := CoordinateFeature(c)
		if err != nil {
			return err
		}
		return writeJSON(w, feature)
	}
	_, err := fmt.Fprintf(w, "%.7f %.7f %.3f (%s, %s)\n", c.Lat, c.Lon, c.Height, c.Datum, c.Unit)
	return err
}

// Grid writes g in format f.
func Grid(w io.Writer, f Format, g GridResult) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, g)
	case FormatGeoJSON:
		feature, err := GridFeature(g)
		if err != nil {
			return err
		}
		return writeJSON(w, feature)
	}
	if g.Letters != "" {
		_, err := fmt.Fprintf(w, "%s (%s)\n", g.Letters, g.GridReference)
		return err
	}
	_, err := fmt.Fprintln(w, g.GridReference)
	return err
}

// Report writes verification results in format f.
func Report(w io.Writer, f Format, results []refdata.Result) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatGeoJSON:
		fc := geojson.NewFeatureCollection()
		for _, r := range results {
			feature, err := ResultFeature(r)
			if err != nil {
				return errors.Wrapf(err, "result for %s", r.Point.City)
			}
			fc.Append(feature)
		}
		return writeJSON(w, fc)
	}

	bold := color.New(color.Bold).SprintFunc()
	for _, r := range results {
		fmt.Fprintf(w, "%s %s\n", mark(r.Passed()), bold(r.Point.City))
		for _, c := range r.Checks {
			switch {
			case c.Error != "":
				fmt.Fprintf(w, "  %s %-14s expected %s: %s\n", mark(false), c.Name, c.Expected, c.Error)
			default:
				fmt.Fprintf(w, "  %s %-14s expected %s, got %s\n", mark(c.Pass), c.Name, c.Expected, c.Got)
			}
		}
		if r.KrugerResidual != nil {
			fmt.Fprintf(w, "  Redfearn/Krüger residual %.3fm\n", *r.KrugerResidual)
		}
	}
	return nil
}

func mark(ok bool) string {
	if ok {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
