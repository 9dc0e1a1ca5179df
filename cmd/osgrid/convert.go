package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tzneal/osgrid"
	"github.com/tzneal/osgrid/internal/render"
)

func parseLatLon(args []string) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid latitude %q", args[0])
	}
	lon, err = strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid longitude %q", args[1])
	}
	return lat, lon, nil
}

// NewDatumCommand converts a coordinate between datums.
func NewDatumCommand() *cobra.Command {
	var (
		from, to, unit string
		height         float64
	)

	cmd := &cobra.Command{
		Use:   "datum LAT LON",
		Short: "Convert a coordinate between WGS84 and OSGB36",
		Example: `  osgrid datum --from osgb36 --to wgs84 -- 50.84609 -0.1424094
  osgrid datum --from wgs84 --to osgb36 -- 54.979889 -1.585609`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, err := parseLatLon(args)
			if err != nil {
				return err
			}
			src, err := osgrid.ParseDatum(from)
			if err != nil {
				return err
			}
			dst, err := osgrid.ParseDatum(to)
			if err != nil {
				return err
			}
			u, err := osgrid.ParseAngleUnit(unit)
			if err != nil {
				return err
			}

			c := osgrid.NewCoordinate(lat, lon, height, u, src)
			out, err := osgrid.TransformDatum(c, dst)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"from": c, "to": out}).Debug("datum transformed")

			format, err := outputFormat()
			if err != nil {
				return err
			}
			return render.Coordinate(cmd.OutOrStdout(), format, out)
		},
	}

	cmd.Flags().StringVar(&from, "from", osgrid.DatumWGS84.String(), "source datum")
	cmd.Flags().StringVar(&to, "to", osgrid.DatumOSGB36.String(), "target datum")
	cmd.Flags().StringVar(&unit, "unit", osgrid.Degrees.String(), "angle unit of LAT and LON (degrees, radians)")
	cmd.Flags().Float64Var(&height, "height", 0, "ellipsoidal height in meters")
	return cmd
}

// NewGridCommand projects a coordinate onto the national grid.
func NewGridCommand() *cobra.Command {
	var (
		datum, unit string
		digits      int
		kruger      bool
	)

	cmd := &cobra.Command{
		Use:     "grid LAT LON",
		Short:   "Convert a coordinate to a national grid reference",
		Example: `  osgrid grid --datum osgb36 -- 50.84609 -0.1424094`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, err := parseLatLon(args)
			if err != nil {
				return err
			}
			d, err := osgrid.ParseDatum(datum)
			if err != nil {
				return err
			}
			u, err := osgrid.ParseAngleUnit(unit)
			if err != nil {
				return err
			}

			c := osgrid.NewCoordinate(lat, lon, 0, u, d)
			project := osgrid.ToGridReference
			if kruger {
				project = osgrid.ToGridReferenceKruger
			}
			g, err := project(c)
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}
			return render.Grid(cmd.OutOrStdout(), format, render.NewGridResult(g, digits))
		},
	}

	cmd.Flags().StringVar(&datum, "datum", osgrid.DatumWGS84.String(), "datum of LAT and LON")
	cmd.Flags().StringVar(&unit, "unit", osgrid.Degrees.String(), "angle unit of LAT and LON (degrees, radians)")
	cmd.Flags().IntVar(&digits, "digits", 10, "digits in the lettered reference (0-10, even)")
	cmd.Flags().BoolVar(&kruger, "kruger", false, "project with the Krüger series instead of Redfearn's")
	return cmd
}

// NewGeodeticCommand converts a grid reference to latitude and longitude.
func NewGeodeticCommand() *cobra.Command {
	var (
		datum  string
		kruger bool
	)

	cmd := &cobra.Command{
		Use:   "geodetic REF | geodetic EASTING NORTHING",
		Short: "Convert a national grid reference to a coordinate",
		Example: `  osgrid geodetic "NZ 26620 65110"
  osgrid geodetic --datum wgs84 426620 565110`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := osgrid.ParseGridReference(strings.Join(args, ","))
			if err != nil {
				return err
			}
			d, err := osgrid.ParseDatum(datum)
			if err != nil {
				return err
			}

			unproject := osgrid.ToGeodetic
			if kruger {
				unproject = osgrid.ToGeodeticKruger
			}
			c, err := unproject(g)
			if err != nil {
				return err
			}
			if d != c.Datum {
				if c, err = osgrid.TransformDatum(c, d); err != nil {
					return err
				}
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}
			return render.Coordinate(cmd.OutOrStdout(), format, c)
		},
	}

	cmd.Flags().StringVar(&datum, "datum", osgrid.DatumOSGB36.String(), "datum of the result")
	cmd.Flags().BoolVar(&kruger, "kruger", false, "invert with the Krüger series instead of Redfearn's")
	return cmd
}
