package cli

import (
	"encoding/csv"
	"io"

	"github.com/spf13/cobra"

	"spray-logger/models"
	"spray-logger/views"
)

var inspectSamples int

var inspectCmd = &cobra.Command{
	Use:   "inspect <log>",
	Short: "Parse a log and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		lg, err := e.load(args[0])
		if err != nil {
			return err
		}
		defer lg.Close()

		out := cmd.OutOrStdout()
		if err := views.RenderSummary(out, lg.Summary()); err != nil {
			return err
		}
		if inspectSamples > 0 {
			io.WriteString(out, "\n")
			return writeSamples(out, lg.SprayAlignedSamples(), inspectSamples)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectSamples, "samples", "n", 0, "print the first N aligned spray samples as CSV")
}

// writeSamples prints up to n spray rows with their header.
func writeSamples(w io.Writer, samples []models.SpraySample, n int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.SpraySample{}.CSVHeader()); err != nil {
		return err
	}
	for i := 0; i < n && i < len(samples); i++ {
		if err := cw.Write(samples[i].CSVRow()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
