// Package refdata loads reference positions known on both datums and on the
// national grid, and checks the converters against them.
package refdata

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tzneal/osgrid"
)

//go:embed reference.yaml
var defaultData []byte

// Point is one reference position.
type Point struct {
	City   string               `json:"city"`
	OSGB36 osgrid.Coordinate    `json:"osgb36"`
	WGS84  osgrid.Coordinate    `json:"wgs84"`
	Grid   osgrid.GridReference `json:"grid"`
}

// Dataset is an ordered set of reference positions.
type Dataset struct {
	Points []Point `json:"points"`
}

type position struct {
	Lat    float64 `yaml:"lat"`
	Lon    float64 `yaml:"lon"`
	Height float64 `yaml:"height,omitempty"`
}

func (p position) coordinate(datum osgrid.Datum) osgrid.Coordinate {
	return osgrid.NewCoordinate(p.Lat, p.Lon, p.Height, osgrid.Degrees, datum)
}

type fileFormat struct {
	Points []struct {
		City   string               `yaml:"city"`
		OSGB36 position             `yaml:"osgb36"`
		WGS84  position             `yaml:"wgs84"`
		Grid   osgrid.GridReference `yaml:"grid"`
	} `yaml:"points"`
}

// Default returns the embedded reference dataset.
func Default() (*Dataset, error) {
	return Parse(defaultData)
}

// Load reads a YAML dataset from path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dataset %s", path)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", path)
	}
	return ds, nil
}

// Parse decodes a YAML dataset. Latitudes and longitudes are in degrees.
func Parse(data []byte) (*Dataset, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal dataset")
	}
	if len(f.Points) == 0 {
		return nil, errors.New("dataset has no points")
	}

	ds := &Dataset{Points: make([]Point, 0, len(f.Points))}
	for i, p := range f.Points {
		if p.City == "" {
			return nil, errors.Errorf("point %d has no city", i)
		}
		ds.Points = append(ds.Points, Point{
			City:   p.City,
			OSGB36: p.OSGB36.coordinate(osgrid.DatumOSGB36),
			WGS84:  p.WGS84.coordinate(osgrid.DatumWGS84),
			Grid:   p.Grid,
		})
	}
	return ds, nil
}

// Lookup returns the point for city.
func (d *Dataset) Lookup(city string) (Point, bool) {
	for _, p := range d.Points {
		if p.City == city {
			return p, true
		}
	}
	return Point{}, false
}
