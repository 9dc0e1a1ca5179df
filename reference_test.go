package osgrid_test

import "github.com/tzneal/osgrid"

type referencePoint struct {
	city   string
	osgb36 osgrid.Coordinate
	wgs84  osgrid.Coordinate
	grid   osgrid.GridReference
}

func osgb36(lat, lon float64) osgrid.Coordinate {
	return osgrid.NewCoordinate(lat, lon, 0, osgrid.Degrees, osgrid.DatumOSGB36)
}

func wgs84(lat, lon float64) osgrid.Coordinate {
	return osgrid.NewCoordinate(lat, lon, 0, osgrid.Degrees, osgrid.DatumWGS84)
}

var referencePoints = []referencePoint{
	{"Brighton", osgb36(50.84609, -0.1424094), wgs84(50.84668, -0.1439875), osgrid.GridReference{Easting: 530760, Northing: 106880}},
	{"Newcastle", osgb36(54.979808, -1.584025), wgs84(54.979889, -1.585609), osgrid.GridReference{Easting: 426620, Northing: 565110}},
	{"Truro", osgb36(50.262067, -5.052743), wgs84(50.262655, -5.053748), osgrid.GridReference{Easting: 182450, Northing: 44760}},
	{"John O'Groats", osgb36(58.639451, -3.069178), wgs84(58.639073, -3.070747), osgrid.GridReference{Easting: 337940, Northing: 972850}},
}
