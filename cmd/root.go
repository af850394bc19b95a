package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heic2jpg",
		Short: "HEIC/HEIF to JPEG converter with web and CLI front ends",
		Long: `heic2jpg converts HEIC/HEIF images (the format modern phone cameras
produce) into standard JPEG files.

It can run as a batch tool over files and folders, or as a web service
that accepts uploads and returns the converted images as a ZIP bundle.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
