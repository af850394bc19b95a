package convert

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/codec"
)

// subfolderName is the per-directory child folder converted files land
// in when the subfolder policy is active.
const subfolderName = "jpg files"

// Options control folder conversion for the CLI path.
type Options struct {
	Quality   int
	Recursive bool
	Subfolder bool
	// OutputDir redirects single-file outputs; folder inputs always use
	// the subfolder policy so outputs stay next to their sources.
	OutputDir string
}

// Tree converts every HEIC/HEIF file under root, printing per-file
// status lines to w. Files are processed in directory-traversal order,
// which is also the order of Summary.Files.
func Tree(c codec.Converter, root string, opts Options, w io.Writer) Summary {
	var sum Summary

	files, err := findHEIC(root, opts.Recursive)
	if err != nil {
		sum.record(FileResult{Input: root, Status: StatusFailed, Err: err}, w)
		return sum
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "no HEIC files found in %s\n", root)
		return sum
	}

	fmt.Fprintf(w, "processing %s: %d HEIC file(s)\n", root, len(files))
	for _, f := range files {
		outDir := filepath.Dir(f)
		if opts.Subfolder {
			outDir = filepath.Join(outDir, subfolderName)
		}
		sum.record(File(c, f, outDir, opts.Quality), w)
	}
	return sum
}

// Paths converts a mix of file and folder arguments, accumulating one
// summary across all of them.
func Paths(c codec.Converter, paths []string, opts Options, w io.Writer) Summary {
	var sum Summary

	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			sum.record(FileResult{Input: path, Status: StatusFailed, Err: err}, w)
		case info.IsDir():
			dirSum := Tree(c, path, opts, w)
			sum.Converted += dirSum.Converted
			sum.Skipped += dirSum.Skipped
			sum.Failed += dirSum.Failed
			sum.Files = append(sum.Files, dirSum.Files...)
		default:
			sum.record(File(c, path, opts.OutputDir, opts.Quality), w)
		}
	}
	return sum
}

// findHEIC returns HEIC/HEIF file paths under root in traversal order.
// Each file is visited exactly once, so no case deduplication is needed.
func findHEIC(root string, recursive bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != root {
				return fs.SkipDir
			}
			// Never descend into previously generated output folders.
			if d.Name() == subfolderName {
				return fs.SkipDir
			}
			return nil
		}
		if !IsHEIC(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return files, nil
}
