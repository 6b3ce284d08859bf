package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"spray-logger/controller"
)

var (
	exportOut      string
	exportCompress bool
)

var exportCmd = &cobra.Command{
	Use:   "export <log>",
	Short: "Write the raw, mission and aligned spray datasets as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		cfg := e.cfg.Export
		if exportOut != "" {
			cfg.BaseDir = exportOut
		}
		if cmd.Flags().Changed("compress") {
			cfg.Compress = exportCompress
		}
		if !filepath.IsAbs(cfg.BaseDir) {
			if abs, err := filepath.Abs(cfg.BaseDir); err == nil {
				cfg.BaseDir = abs
			}
		}

		lg, err := e.load(args[0])
		if err != nil {
			return err
		}
		defer lg.Close()

		ec, err := controller.NewExportController(cfg, e.log)
		if err != nil {
			return err
		}
		m, err := ec.Export(lg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", styleSuccess.Render("✓ exported"), styleValue.Render(ec.SessionDir()))
		for _, f := range m.Files {
			fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-14s", f.Name)), styleValue.Render(fmt.Sprintf("%d rows", f.Rows)))
		}
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-14s", "run id")), styleHint.Render(m.RunID))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "base directory for the export session (overrides export.base_dir)")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "zstd-compress the CSV files")
}
