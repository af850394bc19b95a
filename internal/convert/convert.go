// Package convert applies the HEIC-to-JPEG codec over batches of inputs:
// in-memory upload sets for the web path, and files or folder trees for
// the CLI path.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/codec"
)

// Request is one in-memory conversion input, typically an uploaded file.
type Request struct {
	Name string
	Data []byte
}

// Result is the outcome for a single Request. Exactly one Result is
// produced per Request, in input order.
type Result struct {
	Name   string
	Data   []byte // converted JPEG, nil on failure
	Output string // stored filename, set once the output is written
	Err    error
}

func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Batch converts every request through c. A failed request is recorded
// and never aborts its siblings.
func Batch(c codec.Converter, reqs []Request, quality int) []Result {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, convertOne(c, req, quality))
	}
	return results
}

func convertOne(c codec.Converter, req Request, quality int) Result {
	if len(req.Data) == 0 {
		return Result{Name: req.Name, Err: fmt.Errorf("empty file")}
	}
	out, err := c.Convert(req.Data, quality)
	if err != nil {
		return Result{Name: req.Name, Err: err}
	}
	return Result{Name: req.Name, Data: out}
}

// IsHEIC reports whether name has a .heic or .heif extension,
// case-insensitively.
func IsHEIC(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".heic", ".heif":
		return true
	}
	return false
}

// OutputName swaps the extension of name for .jpg.
func OutputName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
}

// Status classifies a file conversion outcome.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// FileResult is the outcome for one on-disk input file.
type FileResult struct {
	Input  string
	Output string
	Status Status
	Err    error
}

// Summary accumulates file outcomes across a CLI run.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int
	Files     []FileResult
}

func (s Summary) Total() int {
	return s.Converted + s.Skipped + s.Failed
}

// record counts the result and prints a per-file status line to w.
func (s *Summary) record(r FileResult, w io.Writer) {
	s.Files = append(s.Files, r)
	switch r.Status {
	case StatusConverted:
		s.Converted++
		fmt.Fprintf(w, "converted: %s -> %s\n", r.Input, r.Output)
	case StatusSkipped:
		s.Skipped++
		fmt.Fprintf(w, "skipped:   %s (already exists)\n", r.Input)
	case StatusFailed:
		s.Failed++
		fmt.Fprintf(w, "failed:    %s (%v)\n", r.Input, r.Err)
	}
}

// File converts a single file on disk. Output goes to outDir (created if
// absent), or next to the source when outDir is empty. An existing
// output is left alone and reported as skipped.
func File(c codec.Converter, path, outDir string, quality int) FileResult {
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	outPath := filepath.Join(outDir, OutputName(filepath.Base(path)))

	if _, err := os.Stat(outPath); err == nil {
		return FileResult{Input: path, Output: outPath, Status: StatusSkipped}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Input: path, Status: StatusFailed, Err: err}
	}

	out, err := c.Convert(data, quality)
	if err != nil {
		return FileResult{Input: path, Status: StatusFailed, Err: err}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return FileResult{Input: path, Status: StatusFailed, Err: err}
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return FileResult{Input: path, Status: StatusFailed, Err: err}
	}

	return FileResult{Input: path, Output: outPath, Status: StatusConverted}
}
