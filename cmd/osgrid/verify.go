package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tzneal/osgrid/internal/refdata"
	"github.com/tzneal/osgrid/internal/render"
)

// NewVerifyCommand checks the converters against the reference dataset.
func NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check every conversion against the reference dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset()
			if err != nil {
				return err
			}
			format, err := outputFormat()
			if err != nil {
				return err
			}

			results := refdata.Verify(ds)
			if err := render.Report(cmd.OutOrStdout(), format, results); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if !r.Passed() {
					failed++
				}
			}
			logrus.WithFields(logrus.Fields{
				"points": len(results),
				"failed": failed,
			}).Info("verification finished")
			if failed > 0 {
				return errors.Errorf("%d of %d reference points failed", failed, len(results))
			}
			return nil
		},
	}
}
