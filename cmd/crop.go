package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/stickerpress/internal/imageio"
	"github.com/lehigh-university-libraries/stickerpress/internal/transform"
	"github.com/spf13/cobra"
)

func newCropCmd() *cobra.Command {
	var (
		rows      int
		cols      int
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "crop <sheet-image>",
		Short: "Slice a sheet image into a grid of sticker sources",
		Long: `Cuts a single sheet image into rows x cols cells in row-major order and
writes each cell as a numbered PNG. Cell boundaries round to the nearest
pixel, so sheets whose dimensions do not divide evenly still tile fully.`,
		Example: `  # Cut a 4x4 sticker sheet into 16 sources
  stickerpress crop sheet.png --rows 4 --cols 4 --out ./sources`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := imageio.DecodeFile(args[0])
			if err != nil {
				return err
			}
			cells, err := transform.CropGrid(sheet, rows, cols)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			for i, cell := range cells {
				out := filepath.Join(outputDir, fmt.Sprintf("%s_%02d.png", base, i+1))
				if err := imageio.SavePNG(cell, out); err != nil {
					return err
				}
			}
			slog.Info("Sheet sliced", "cells", len(cells), "rows", rows, "cols", cols, "out", outputDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 2, "Grid rows")
	cmd.Flags().IntVar(&cols, "cols", 2, "Grid columns")
	cmd.Flags().StringVar(&outputDir, "out", "cells", "Directory for sliced cells")

	return cmd
}
