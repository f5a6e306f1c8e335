package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/stickerpress/internal/collection"
	"github.com/lehigh-university-libraries/stickerpress/internal/imageio"
	"github.com/lehigh-university-libraries/stickerpress/internal/matting"
	"github.com/spf13/cobra"
)

func newProcessCmd() *cobra.Command {
	var (
		inputDir  string
		outputDir string
		mode      string
		threshold uint8
		auto      bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Remove backgrounds from a directory of sticker sources",
		Long: `Runs threshold matting over every image in a directory and writes the
matted PNGs to the output directory. Images process sequentially in natural
filename order; a failure on one image is reported and does not stop the rest.`,
		Example: `  # Key out white backgrounds above threshold 200
  stickerpress process --in ./sources --out ./matted --mode white --threshold 200

  # Pick mode and threshold per image from its border color
  stickerpress process --in ./sources --out ./matted --auto`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := matting.Settings{Threshold: threshold}
			if !auto {
				m, err := matting.ParseMode(mode)
				if err != nil {
					return err
				}
				settings.Mode = m
			}

			paths, err := imageio.ListImages(inputDir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no images found in %s", inputDir)
			}
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}

			manager := collection.NewManager()
			perItem := make(map[string]matting.Settings, len(paths))
			for _, path := range paths {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				item := manager.AddBytes(filepath.Base(path), data)

				itemSettings := settings
				if auto && item.Source != nil {
					suggested, err := matting.Suggest(item.Source)
					if err != nil {
						slog.Warn("Suggestion failed, skipping matting for image", "name", item.Name, "err", err)
						suggested = matting.Settings{Mode: matting.ModeNone}
					}
					slog.Info("Suggested settings", "name", item.Name, "mode", suggested.Mode, "threshold", suggested.Threshold)
					itemSettings = suggested
				}
				perItem[item.ID] = itemSettings
			}

			failed := 0
			for _, item := range manager.Items() {
				if item.Status == collection.StatusDone {
					continue
				}
				if err := manager.Process(cmd.Context(), item.ID, perItem[item.ID]); err != nil {
					return err
				}
			}
			for _, item := range manager.Items() {
				if item.Status != collection.StatusDone {
					slog.Warn("Image failed", "name", item.Name, "err", item.Err)
					failed++
					continue
				}
				out := filepath.Join(outputDir, item.Name)
				if filepath.Ext(out) != ".png" {
					out = out[:len(out)-len(filepath.Ext(out))] + ".png"
				}
				if err := imageio.SavePNG(item.Processed, out); err != nil {
					return err
				}
			}

			slog.Info("Processing finished", "total", len(paths), "failed", failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "in", ".", "Directory of source images")
	cmd.Flags().StringVar(&outputDir, "out", "matted", "Directory for matted PNGs")
	cmd.Flags().StringVar(&mode, "mode", "white", "Matting mode: none, white, or black")
	cmd.Flags().Uint8Var(&threshold, "threshold", 200, "Channel threshold (0-255)")
	cmd.Flags().BoolVar(&auto, "auto", false, "Suggest mode and threshold per image from its border color")

	return cmd
}
