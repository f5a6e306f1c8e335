package cmd

import (
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/stickerpress/internal/pack"
	"github.com/lehigh-university-libraries/stickerpress/internal/verify"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var packType string

	cmd := &cobra.Command{
		Use:   "verify <pack.zip>",
		Short: "Check a pack zip against the submission contract",
		Long: `Reads back a pack zip and checks every entry: numbered stickers form
a contiguous sequence, main.png and tab.png are present, and every
image has the exact pixel dimensions the platform requires for the
given pack type.`,
		Example: `  # Check a standard pack
  stickerpress verify LINE_Stickers_16.zip

  # Check a fullscreen pack
  stickerpress verify pack.zip --type fullscreen`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := pack.Type(packType)
			if t != pack.TypeStandard && t != pack.TypeFullscreen {
				return fmt.Errorf("unknown pack type: %s", packType)
			}
			report, err := verify.CheckZip(args[0], t)
			if err != nil {
				return err
			}
			for _, res := range report.Results {
				if res.OK {
					slog.Info("Entry OK", "entry", res.Entry)
				} else {
					slog.Error("Entry failed", "entry", res.Entry, "detail", res.Detail)
				}
			}
			if !report.Passed() {
				return fmt.Errorf("%s does not satisfy the %s submission contract", args[0], t)
			}
			slog.Info("Pack verified", "stickers", report.Stickers, "type", t)
			return nil
		},
	}

	cmd.Flags().StringVar(&packType, "type", "standard", "Pack type: standard or fullscreen")

	return cmd
}
