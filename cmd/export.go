package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/nestegg/internal/projection"
	"github.com/theirongolddev/nestegg/internal/report"

	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the projection as a PDF report or a CSV trajectory",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "pdf", "Output format: pdf or csv")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default nestegg.<format>, - for stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	var write func(io.Writer) error

	in, err := resolveInputs(cmd, loadConfigOrDefault())
	if err != nil {
		return err
	}
	plan := projection.Evaluate(in)

	switch flagExportFormat {
	case "pdf":
		write = func(w io.Writer) error { return report.WritePDF(w, plan) }
	case "csv":
		write = func(w io.Writer) error { return report.WriteCSV(w, plan) }
	default:
		return fmt.Errorf("unknown format %q (want pdf or csv)", flagExportFormat)
	}

	out := flagExportOutput
	if out == "" {
		out = "nestegg." + flagExportFormat
	}
	if out == "-" {
		return write(os.Stdout)
	}

	f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:gosec // output path is chosen by the local user
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", out)
	}
	return nil
}
