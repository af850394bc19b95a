package cmd

import (
	"fmt"

	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/codec"
	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/convert"
	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/report"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var (
		recursive   bool
		noSubfolder bool
		quality     int
		output      string
		reportPath  string
	)

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert HEIC/HEIF files or folders to JPEG",
		Long: `Converts one or more HEIC/HEIF files to JPEG.

Arguments may be individual files or folders. Folders are scanned for
files ending in .heic or .heif (case-insensitive); with --recursive the
scan descends into subfolders. Folder outputs land in a "jpg files"
child next to each source unless --no-subfolder is given. The --output
flag redirects single-file outputs to a specific folder.`,
		Example: `  # Convert a single file
  heic2jpg convert photo.heic

  # Convert a folder tree at lower quality, writing a summary report
  heic2jpg convert -r -q 80 --report report.yaml ~/Pictures/import`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := convert.Options{
				Quality:   quality,
				Recursive: recursive,
				Subfolder: !noSubfolder,
				OutputDir: output,
			}

			out := cmd.OutOrStdout()
			sum := convert.Paths(codec.NewHEIF(), args, opts, out)
			fmt.Fprintf(out, "\nTOTAL: %d converted, %d skipped, %d failed\n",
				sum.Converted, sum.Skipped, sum.Failed)

			if reportPath != "" {
				if err := report.Write(reportPath, report.FromSummary(opts, sum)); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Fprintf(out, "Report written to %s\n", reportPath)
			}

			if sum.Converted == 0 && sum.Failed > 0 {
				return fmt.Errorf("no files converted (%d failed)", sum.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recursively convert files in subfolders")
	cmd.Flags().IntVarP(&quality, "quality", "q", 95, "JPEG quality (1-100)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory for converted files")
	cmd.Flags().BoolVar(&noSubfolder, "no-subfolder", false, "Save next to the source instead of a 'jpg files' subfolder")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML batch summary to this path")

	return cmd
}
