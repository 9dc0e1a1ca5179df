package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tzneal/osgrid"
	"github.com/tzneal/osgrid/internal/refdata"
	"github.com/tzneal/osgrid/internal/render"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	logLevel    = "info"
	outputName  = string(render.FormatText)
	datasetPath = ""
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.Kitchen,
	})
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func outputFormat() (render.Format, error) {
	return render.ParseFormat(outputName)
}

func loadDataset() (*refdata.Dataset, error) {
	if datasetPath == "" {
		return refdata.Default()
	}
	logrus.WithField("path", datasetPath).Debug("loading reference dataset")
	return refdata.Load(datasetPath)
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, osgrid.ErrUnsupportedConversion):
		fmt.Fprintln(os.Stderr, "\nOnly WGS84 <-> OSGB36 datum conversions are supported.")
	case errors.Is(err, osgrid.ErrInvalidGridReference):
		fmt.Fprintln(os.Stderr, "\nGrid references look like \"TQ 30760 06880\" or \"530760,106880\".")
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

// NewCommand builds the root command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "osgrid",
		Short: "osgrid converts between WGS84, OSGB36 and the Ordnance Survey national grid",
		Long: `osgrid converts coordinates between the WGS84 and OSGB36 datums with a
Helmert transform, and between OSGB36 latitude/longitude and national grid
references with the Transverse Mercator projection.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := setupLogger(); err != nil {
				return err
			}
			_, err := outputFormat()
			return err
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", envOr("OSGRID_LOG_LEVEL", logLevel), "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVarP(&outputName, "output", "o", outputName, "output format (text, json, geojson)")
	globalFlags.StringVar(&datasetPath, "dataset", envOr("OSGRID_DATASET", datasetPath), "reference dataset YAML file, the built-in dataset when empty")

	cmd.AddCommand(
		NewDatumCommand(),
		NewGridCommand(),
		NewGeodeticCommand(),
		NewVerifyCommand(),
		NewServeCommand(),
		NewVersionCommand(),
	)

	return cmd
}

// NewVersionCommand prints the build version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
