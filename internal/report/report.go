// Package report writes a YAML summary of a CLI batch run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/convert"
	"gopkg.in/yaml.v3"
)

// RunConfig records the settings the batch ran with.
type RunConfig struct {
	Quality   int    `yaml:"quality"`
	Recursive bool   `yaml:"recursive"`
	Subfolder bool   `yaml:"subfolder"`
	Timestamp string `yaml:"timestamp"`
}

// FileOutcome is the per-file section of the report.
type FileOutcome struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output,omitempty"`
	Status string `yaml:"status"`
	Reason string `yaml:"reason,omitempty"`
}

// Report is the complete YAML document.
type Report struct {
	Config    RunConfig     `yaml:"config"`
	Converted int           `yaml:"converted"`
	Skipped   int           `yaml:"skipped"`
	Failed    int           `yaml:"failed"`
	Files     []FileOutcome `yaml:"files"`
}

// FromSummary builds a report from a finished batch run.
func FromSummary(opts convert.Options, sum convert.Summary) Report {
	rep := Report{
		Config: RunConfig{
			Quality:   opts.Quality,
			Recursive: opts.Recursive,
			Subfolder: opts.Subfolder,
			Timestamp: time.Now().Format("2006-01-02_15-04-05"),
		},
		Converted: sum.Converted,
		Skipped:   sum.Skipped,
		Failed:    sum.Failed,
		Files:     make([]FileOutcome, 0, len(sum.Files)),
	}

	for _, f := range sum.Files {
		outcome := FileOutcome{
			Input:  f.Input,
			Output: f.Output,
			Status: string(f.Status),
		}
		if f.Err != nil {
			outcome.Reason = f.Err.Error()
		}
		rep.Files = append(rep.Files, outcome)
	}
	return rep
}

// Write marshals the report to YAML at path, creating parent
// directories as needed.
func Write(path string, rep Report) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
