package refdata_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzneal/osgrid"
	"github.com/tzneal/osgrid/internal/refdata"
)

func TestDefault(t *testing.T) {
	ds, err := refdata.Default()
	require.NoError(t, err)
	require.Len(t, ds.Points, 4)

	brighton, ok := ds.Lookup("Brighton")
	require.True(t, ok)
	assert.Equal(t, osgrid.NewCoordinate(50.84609, -0.1424094, 0, osgrid.Degrees, osgrid.DatumOSGB36), brighton.OSGB36)
	assert.Equal(t, osgrid.NewCoordinate(50.84668, -0.1439875, 0, osgrid.Degrees, osgrid.DatumWGS84), brighton.WGS84)
	assert.Equal(t, osgrid.GridReference{Easting: 530760, Northing: 106880}, brighton.Grid)

	jog, ok := ds.Lookup("John O'Groats")
	require.True(t, ok)
	assert.Equal(t, 972850.0, jog.Grid.Northing)

	_, ok = ds.Lookup("Atlantis")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	for name, data := range map[string]string{
		"not yaml":  "points: [",
		"no points": "points: []",
		"no city":   "points:\n  - osgb36: {lat: 50, lon: -1}\n",
	} {
		_, err := refdata.Parse([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.yaml")
	data := `points:
  - city: Newcastle
    osgb36: {lat: 54.979808, lon: -1.584025, height: 10}
    wgs84: {lat: 54.979889, lon: -1.585609}
    grid: {easting: 426620, northing: 565110}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	ds, err := refdata.Load(path)
	require.NoError(t, err)
	require.Len(t, ds.Points, 1)
	assert.Equal(t, 10.0, ds.Points[0].OSGB36.Height)
	assert.Equal(t, osgrid.DatumWGS84, ds.Points[0].WGS84.Datum)

	_, err = refdata.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVerifyDefault(t *testing.T) {
	ds, err := refdata.Default()
	require.NoError(t, err)

	results := refdata.Verify(ds)
	require.Len(t, results, len(ds.Points))
	for _, r := range results {
		assert.Len(t, r.Checks, 5)
		for _, c := range r.Checks {
			assert.True(t, c.Pass, "%s %s: expected %s, got %s %s", r.Point.City, c.Name, c.Expected, c.Got, c.Error)
		}
		assert.True(t, r.Passed(), r.Point.City)
		require.NotNil(t, r.KrugerResidual, r.Point.City)
		assert.LessOrEqual(t, *r.KrugerResidual, math.Sqrt2, r.Point.City)
	}
}

func TestVerifyPointFailure(t *testing.T) {
	ds, err := refdata.Default()
	require.NoError(t, err)
	p, _ := ds.Lookup("Truro")
	p.Grid = osgrid.GridReference{Easting: 250000, Northing: 44760}

	r := refdata.VerifyPoint(p)
	assert.False(t, r.Passed())
	failed := map[string]bool{}
	for _, c := range r.Checks {
		if !c.Pass {
			failed[c.Name] = true
		}
	}
	assert.Equal(t, map[string]bool{"OSGB36->grid": true, "WGS84->grid": true, "grid->OSGB36": true}, failed)
}
