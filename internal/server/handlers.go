package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/tzneal/osgrid"
	"github.com/tzneal/osgrid/internal/refdata"
	"github.com/tzneal/osgrid/internal/render"
)

const defaultDigits = 10

func abort(c *gin.Context, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, osgrid.ErrNoConvergence) {
		status = http.StatusUnprocessableEntity
	}
	c.IndentedJSON(status, gin.H{"error": err.Error()})
	_ = c.AbortWithError(status, err)
}

func floatQuery(c *gin.Context, key string, required bool) (float64, error) {
	v, ok := c.GetQuery(key)
	if !ok {
		if required {
			return 0, errors.Errorf("missing query parameter %s", key)
		}
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Errorf("query parameter %s is not a number", key)
	}
	return f, nil
}

// coordinateQuery reads lat, lon, height, unit and the datum named by
// datumKey.
func coordinateQuery(c *gin.Context, datumKey string, defaultDatum osgrid.Datum) (osgrid.Coordinate, error) {
	lat, err := floatQuery(c, "lat", true)
	if err != nil {
		return osgrid.Coordinate{}, err
	}
	lon, err := floatQuery(c, "lon", true)
	if err != nil {
		return osgrid.Coordinate{}, err
	}
	height, err := floatQuery(c, "height", false)
	if err != nil {
		return osgrid.Coordinate{}, err
	}
	unit := osgrid.Degrees
	if v, ok := c.GetQuery("unit"); ok {
		if unit, err = osgrid.ParseAngleUnit(v); err != nil {
			return osgrid.Coordinate{}, err
		}
	}
	datum := defaultDatum
	if v, ok := c.GetQuery(datumKey); ok {
		if datum, err = osgrid.ParseDatum(v); err != nil {
			return osgrid.Coordinate{}, err
		}
	}
	return osgrid.NewCoordinate(lat, lon, height, unit, datum), nil
}

// getDatum converts ?lat=&lon=[&height=&unit=]&from=&to= between datums.
func (s *Server) getDatum(c *gin.Context) {
	coord, err := coordinateQuery(c, "from", osgrid.DatumWGS84)
	if err != nil {
		abort(c, err)
		return
	}
	to, err := osgrid.ParseDatum(c.DefaultQuery("to", osgrid.DatumOSGB36.String()))
	if err != nil {
		abort(c, err)
		return
	}
	out, err := osgrid.TransformDatum(coord, to)
	if err != nil {
		abort(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, out)
}

// getGrid projects ?lat=&lon=[&datum=&digits=] onto the national grid.
func (s *Server) getGrid(c *gin.Context) {
	coord, err := coordinateQuery(c, "datum", osgrid.DatumWGS84)
	if err != nil {
		abort(c, err)
		return
	}
	digits, err := strconv.Atoi(c.DefaultQuery("digits", strconv.Itoa(defaultDigits)))
	if err != nil {
		abort(c, errors.New("query parameter digits is not an integer"))
		return
	}
	g, err := osgrid.ToGridReference(coord)
	if err != nil {
		abort(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, render.NewGridResult(g, digits))
}

// getGeodetic converts ?ref= (lettered or "easting,northing") to a
// geodetic coordinate, optionally on ?datum=.
func (s *Server) getGeodetic(c *gin.Context) {
	g, err := osgrid.ParseGridReference(c.Query("ref"))
	if err != nil {
		abort(c, err)
		return
	}
	coord, err := osgrid.ToGeodetic(g)
	if err != nil {
		abort(c, err)
		return
	}
	if v, ok := c.GetQuery("datum"); ok {
		datum, err := osgrid.ParseDatum(v)
		if err != nil {
			abort(c, err)
			return
		}
		if datum != coord.Datum {
			if coord, err = osgrid.TransformDatum(coord, datum); err != nil {
				abort(c, err)
				return
			}
		}
	}
	c.IndentedJSON(http.StatusOK, coord)
}

// getVerify runs the reference dataset checks.
func (s *Server) getVerify(c *gin.Context) {
	results := refdata.Verify(s.dataset)
	status := http.StatusOK
	for _, r := range results {
		if !r.Passed() {
			status = http.StatusConflict
			break
		}
	}
	c.IndentedJSON(status, results)
}
