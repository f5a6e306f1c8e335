package cmd

import (
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/stickerpress/internal/editor"
	"github.com/lehigh-university-libraries/stickerpress/internal/imageio"
	"github.com/lehigh-university-libraries/stickerpress/internal/matting"
	"github.com/spf13/cobra"
)

func newRetouchCmd() *cobra.Command {
	var (
		scriptPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "retouch <image>",
		Short: "Replay a scripted touch-up against an image",
		Long: `Opens an editing session on the image and replays a YAML touch-up
script through it. Scripts use the same operations as the interactive
editor, so a recorded touch-up can be re-run whenever the source
artwork changes.`,
		Example: `  # Matte then clean up two spots, keeping the original on disk
  stickerpress retouch art/cat.png --script cat-touchup.yaml --out matted/cat.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imageio.DecodeFile(args[0])
			if err != nil {
				return err
			}
			script, err := editor.LoadScript(scriptPath)
			if err != nil {
				return err
			}

			session := editor.NewSession(img, nil, matting.Settings{Mode: matting.ModeNone})
			if err := session.Run(script); err != nil {
				return err
			}

			if output == "" {
				output = args[0]
				if i := strings.LastIndex(output, "."); i > 0 {
					output = output[:i]
				}
				output += ".retouched.png"
			}
			result, settings := session.Save()
			if err := imageio.SavePNG(result, output); err != nil {
				return err
			}
			slog.Info("Touch-up applied", "ops", len(script.Ops), "mode", settings.Mode, "out", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "YAML touch-up script to replay")
	cmd.Flags().StringVar(&output, "out", "", "Output path (default <image>.retouched.png)")
	cmd.MarkFlagRequired("script")

	return cmd
}
