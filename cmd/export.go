package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lehigh-university-libraries/stickerpress/internal/archive"
	"github.com/lehigh-university-libraries/stickerpress/internal/collection"
	"github.com/lehigh-university-libraries/stickerpress/internal/imageio"
	"github.com/lehigh-university-libraries/stickerpress/internal/matting"
	"github.com/lehigh-university-libraries/stickerpress/internal/pack"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		inputDir   string
		output     string
		configPath string
		count      int
		packType   string
		mainName   string
		tabName    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build a submission-ready sticker pack zip",
		Long: `Loads already-matted PNGs from a directory in natural filename order,
resizes each onto its exact submission canvas, and writes the pack zip.
Numbered stickers, main.png, and tab.png all carry a 10px transparent
margin and the precise pixel dimensions the platform requires.`,
		Example: `  # 16-sticker standard pack from ./matted
  stickerpress export --in ./matted --count 16 --type standard

  # Pack parameters from a YAML file, explicit main and tab images
  stickerpress export --in ./matted --config pack.yaml --main 03.png --tab 01.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := pack.Config{Count: count, Type: pack.Type(packType)}
			if configPath != "" {
				loaded, err := pack.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			} else if env := os.Getenv("STICKERPRESS_TYPE"); env != "" && !cmd.Flags().Changed("type") {
				cfg.Type = pack.Type(env)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			paths, err := imageio.ListImages(inputDir)
			if err != nil {
				return err
			}

			manager := collection.NewManager()
			for _, path := range paths {
				img, err := imageio.DecodeFile(path)
				if err != nil {
					slog.Warn("Skipping undecodable image", "path", path, "err", err)
					continue
				}
				manager.Add(filepath.Base(path), img)
			}
			// Inputs are already matted; adopt their pixels as-is.
			if err := manager.ProcessAll(cmd.Context(), matting.Settings{Mode: matting.ModeNone}); err != nil {
				return err
			}
			for _, item := range manager.Items() {
				if item.Name == mainName {
					if err := manager.SetRole(item.ID, collection.RoleMain); err != nil {
						return err
					}
				}
				if item.Name == tabName {
					if err := manager.SetRole(item.ID, collection.RoleTab); err != nil {
						return err
					}
				}
			}

			artifacts, err := collection.Export(manager.Items(), cfg, func(fraction float64) {
				slog.Info("Export progress", "percent", strconv.Itoa(int(fraction*100)))
			})
			if err != nil {
				return err
			}
			blob, err := archive.BuildZip(artifacts)
			if err != nil {
				return err
			}

			if output == "" {
				output = archive.Filename(len(artifacts) - 2)
			}
			if err := os.WriteFile(output, blob, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			slog.Info("Pack exported", "stickers", len(artifacts)-2, "type", cfg.Type, "out", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "in", "matted", "Directory of matted PNGs")
	cmd.Flags().StringVar(&output, "out", "", "Output zip path (default LINE_Stickers_<n>.zip)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML pack config file (overrides --count/--type)")
	cmd.Flags().IntVar(&count, "count", 8, "Pack size: 8, 16, 24, 32, or 40")
	cmd.Flags().StringVar(&packType, "type", "standard", "Pack type: standard or fullscreen")
	cmd.Flags().StringVar(&mainName, "main", "", "Filename of the main image (default first sticker)")
	cmd.Flags().StringVar(&tabName, "tab", "", "Filename of the tab image (default first sticker)")

	return cmd
}
