package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stickerpress",
		Short: "Sticker pack preparation tool with threshold matting and submission-ready export",
		Long: `Stickerpress prepares sticker image sets for messaging-platform submission.

It removes flat backgrounds with a color-threshold matte, slices sheet images
into grids, replays manual touch-up scripts, and exports zip archives whose
file names and pixel dimensions match the platform's submission contract.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newProcessCmd())
	cmd.AddCommand(newCropCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newRetouchCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
