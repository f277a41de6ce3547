package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

var (
	imageWidths  []int
	imageWorkers int
)

var imagesCmd = &cobra.Command{
	Use:   "images <src> <dst>",
	Short: "Write resized JPEG variants of every image in src to dst",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := folio.OptimizeImages(cmd.Context(), args[0], args[1], imageWidths, imageWorkers)
		fmt.Fprintf(cmd.OutOrStdout(), "%d images, %d variants written to %s\n", report.Sources, report.Variants, args[1])
		return err
	},
}

func init() {
	imagesCmd.Flags().IntSliceVar(&imageWidths, "widths", folio.VariantWidths, "variant widths in pixels")
	imagesCmd.Flags().IntVar(&imageWorkers, "workers", 0, "concurrent workers (default: number of CPUs)")
}
