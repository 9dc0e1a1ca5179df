package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzneal/osgrid"
	"github.com/tzneal/osgrid/internal/render"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logLevel = "error"
	outputName = string(render.FormatText)
	datasetPath = ""

	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDatumCommand(t *testing.T) {
	out, err := run(t, "datum", "--from", "osgb36", "--to", "wgs84", "--", "50.84609", "-0.1424094")
	require.NoError(t, err)
	assert.Equal(t, "50.8466800 -0.1439875 0.000 (WGS84, degrees)\n", out)

	_, err = run(t, "datum", "--from", "wgs84", "--to", "wgs84", "51", "1")
	assert.ErrorIs(t, err, osgrid.ErrUnsupportedConversion)

	_, err = run(t, "datum", "north", "1")
	assert.Error(t, err)
}

func TestGridCommand(t *testing.T) {
	out, err := run(t, "grid", "--datum", "osgb36", "--", "50.84609", "-0.1424094")
	require.NoError(t, err)
	assert.Equal(t, "TQ 30759 06880 (530759,106880)\n", out)

	out, err = run(t, "grid", "--datum", "osgb36", "--kruger", "--digits", "6", "--", "54.979808", "-1.584025")
	require.NoError(t, err)
	assert.Equal(t, "NZ 266 651 (426620,565110)\n", out)
}

func TestGeodeticCommand(t *testing.T) {
	out, err := run(t, "geodetic", "NZ 26620 65110")
	require.NoError(t, err)
	assert.Equal(t, "54.9798100 -1.5840250 0.000 (OSGB36, degrees)\n", out)

	out, err = run(t, "geodetic", "426620", "565110")
	require.NoError(t, err)
	assert.Equal(t, "54.9798100 -1.5840250 0.000 (OSGB36, degrees)\n", out)

	_, err = run(t, "geodetic", "TI 1 2")
	assert.ErrorIs(t, err, osgrid.ErrInvalidGridReference)
}

func TestVerifyCommand(t *testing.T) {
	out, err := run(t, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Brighton")

	out, err = run(t, "--output", "geojson", "verify")
	require.NoError(t, err)
	assert.Contains(t, out, `"FeatureCollection"`)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`points:
  - city: Nowhere
    osgb36: {lat: 50.84609, lon: -0.1424094}
    wgs84: {lat: 50.84668, lon: -0.1439875}
    grid: {easting: 100000, northing: 900000}
`), 0o600))
	_, err = run(t, "verify", "--dataset", path)
	assert.Error(t, err)
}

func TestOutputFlag(t *testing.T) {
	_, err := run(t, "--output", "xml", "version")
	assert.Error(t, err)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}
