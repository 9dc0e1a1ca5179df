package osgrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzneal/osgrid"
)

func TestToGridReferenceBrighton(t *testing.T) {
	brighton := referencePoints[0]
	g, err := osgrid.ToGridReference(brighton.osgb36)
	require.NoError(t, err)
	assert.Equal(t, osgrid.GridReference{Easting: 530759, Northing: 106880}, g)
	assert.True(t, g.TolerantEqual(brighton.grid))
	assert.True(t, g.LooseEqual(brighton.grid))
}

func TestToGridReferenceReference(t *testing.T) {
	for _, p := range referencePoints {
		t.Run(p.city, func(t *testing.T) {
			g, err := osgrid.ToGridReference(p.osgb36)
			require.NoError(t, err)
			if !g.LooseEqual(p.grid) {
				t.Errorf("from OSGB36: expected %s, got %s", p.grid, g)
			}

			g, err = osgrid.ToGridReference(p.wgs84)
			require.NoError(t, err)
			if !g.LooseEqual(p.grid) {
				t.Errorf("from WGS84: expected %s, got %s", p.grid, g)
			}
		})
	}
}

func TestToGridReferenceTruncates(t *testing.T) {
	newcastle := referencePoints[1]
	g, err := osgrid.ToGridReference(newcastle.osgb36)
	require.NoError(t, err)
	assert.Equal(t, newcastle.grid, g)

	truro := referencePoints[2]
	g, err = osgrid.ToGridReference(truro.osgb36)
	require.NoError(t, err)
	assert.Equal(t, osgrid.GridReference{Easting: 182449, Northing: 44759}, g)
}

func TestToGeodeticReference(t *testing.T) {
	for _, p := range referencePoints {
		t.Run(p.city, func(t *testing.T) {
			c, err := osgrid.ToGeodetic(p.grid)
			require.NoError(t, err)
			assert.Equal(t, osgrid.DatumOSGB36, c.Datum)
			assert.Equal(t, osgrid.Degrees, c.Unit)
			assert.LessOrEqual(t, osgrid.SignificantFigures(c.Lat), 7)
			assert.LessOrEqual(t, osgrid.SignificantFigures(c.Lon), 7)
			if !c.LooseEqual(p.osgb36) {
				t.Errorf("expected %s, got %s", p.osgb36, c)
			}
		})
	}
}

func TestToGeodeticNewcastle(t *testing.T) {
	newcastle := referencePoints[1]
	c, err := newcastle.grid.ToGeodetic()
	require.NoError(t, err)
	assert.Equal(t, osgb36(54.97981, -1.584025), c)
	assert.True(t, c.TolerantEqual(newcastle.osgb36))
}

func TestGridRoundTrip(t *testing.T) {
	for e := 100000.0; e <= 700000; e += 50000 {
		for n := 10000.0; n <= 1200000; n += 50000 {
			g := osgrid.GridReference{Easting: e, Northing: n}
			c, err := osgrid.ToGeodetic(g)
			if err != nil {
				t.Fatalf("expected no error converting %s, got %s", g, err)
			}
			g2, err := osgrid.ToGridReference(c)
			if err != nil {
				t.Fatalf("expected no error converting %s back, got %s", c, err)
			}
			if !g2.LooseEqual(g) {
				t.Fatalf("expected %s, got %s via %s", g, g2, c)
			}
		}
	}
}

func TestGeodeticRoundTrip(t *testing.T) {
	const earthRadius = 6371000.0 // meters
	// Truncating to whole meters moves a point by up to 1.4m, which is more
	// than the last figure of some published coordinates.
	loose := map[string]bool{
		"Brighton":      false,
		"Newcastle":     true,
		"Truro":         false,
		"John O'Groats": true,
	}
	for _, p := range referencePoints {
		g, err := osgrid.ToGridReference(p.osgb36)
		require.NoError(t, err)
		c, err := osgrid.ToGeodetic(g)
		require.NoError(t, err)

		assert.Equal(t, loose[p.city], c.LooseEqual(p.osgb36), "%s: %s via %s", p.city, c, g)
		dist := float64(c.LatLng().Distance(p.osgb36.LatLng())) * earthRadius
		assert.Less(t, dist, 1.5, "%s: %s is %.2fm from %s", p.city, c, dist, p.osgb36)
	}
}

func TestKrugerMatchesRedfearn(t *testing.T) {
	for _, p := range referencePoints {
		redfearn, err := osgrid.ToGeodetic(p.grid)
		require.NoError(t, err)
		kruger, err := osgrid.ToGeodeticKruger(p.grid)
		require.NoError(t, err)
		assert.Equal(t, redfearn, kruger, p.city)

		g, err := osgrid.ToGridReferenceKruger(p.osgb36)
		require.NoError(t, err)
		if !g.LooseEqual(p.grid) {
			t.Errorf("%s: expected %s, got %s", p.city, p.grid, g)
		}
	}
}

func TestGridReferenceEquality(t *testing.T) {
	a := osgrid.GridReference{Easting: 530759, Northing: 106880}
	b := osgrid.GridReference{Easting: 530760, Northing: 106880}
	c := osgrid.GridReference{Easting: 530770, Northing: 106880}
	d := osgrid.GridReference{Easting: 530860, Northing: 106880}

	assert.False(t, a.Equal(b))
	assert.True(t, a.TolerantEqual(b))
	assert.True(t, b.TolerantEqual(a))
	assert.False(t, b.TolerantEqual(c))
	assert.True(t, b.LooseEqual(c))
	assert.False(t, b.LooseEqual(d))

	// midpoints round to even
	mid := osgrid.GridReference{Easting: 426625, Northing: 565110}
	assert.True(t, mid.TolerantEqual(osgrid.GridReference{Easting: 426620, Northing: 565110}))
	assert.False(t, mid.TolerantEqual(osgrid.GridReference{Easting: 426630, Northing: 565110}))
	assert.True(t, osgrid.GridReference{Easting: 106885, Northing: 44765}.TolerantEqual(osgrid.GridReference{Easting: 106880, Northing: 44760}))
}
