package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTree creates files under dir, keyed by relative path.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestTreeRecursive(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.heic":                 "a",
		"B.HEIC":                 "b",
		"nested/c.heif":          "c",
		"nested/deeper/d.HEIF":   "d",
		"nested/readme.txt":      "not an image",
		"nested/already.jpg":     "jpeg",
		"nested/deeper/bad.heic": "bad data",
	})

	var out bytes.Buffer
	sum := Tree(&fakeConverter{}, dir, Options{Quality: 95, Recursive: true, Subfolder: true}, &out)

	if sum.Converted != 4 {
		t.Errorf("converted = %d, want 4\noutput:\n%s", sum.Converted, out.String())
	}
	if sum.Failed != 1 {
		t.Errorf("failed = %d, want 1", sum.Failed)
	}
	if sum.Total() != 5 {
		t.Errorf("total = %d, want 5", sum.Total())
	}

	// Outputs mirror the source structure, one "jpg files" child per dir.
	for _, want := range []string{
		filepath.Join(dir, "jpg files", "a.jpg"),
		filepath.Join(dir, "jpg files", "B.jpg"),
		filepath.Join(dir, "nested", "jpg files", "c.jpg"),
		filepath.Join(dir, "nested", "deeper", "jpg files", "d.jpg"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("missing output %s", want)
		}
	}
}

func TestTreeNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"top.heic":         "top",
		"nested/skip.heic": "nested",
	})

	var out bytes.Buffer
	sum := Tree(&fakeConverter{}, dir, Options{Quality: 95, Recursive: false, Subfolder: false}, &out)

	if sum.Converted != 1 {
		t.Fatalf("converted = %d, want 1", sum.Converted)
	}
	if _, err := os.Stat(filepath.Join(dir, "top.jpg")); err != nil {
		t.Error("expected top.jpg next to source with subfolder policy off")
	}
	if _, err := os.Stat(filepath.Join(dir, "nested", "skip.jpg")); err == nil {
		t.Error("nested file should not be converted without --recursive")
	}
}

func TestTreeTraversalOrder(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"b.heic":     "b",
		"a.heic":     "a",
		"sub/z.heic": "z",
	})

	var out bytes.Buffer
	sum := Tree(&fakeConverter{}, dir, Options{Quality: 95, Recursive: true}, &out)

	var got []string
	for _, f := range sum.Files {
		got = append(got, filepath.Base(f.Input))
	}
	want := []string{"a.heic", "b.heic", "z.heic"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("traversal order = %v, want %v", got, want)
	}
}

func TestTreeSkipsGeneratedOutputs(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.heic":               "a",
		"jpg files/stale.heic": "stale",
	})

	var out bytes.Buffer
	sum := Tree(&fakeConverter{}, dir, Options{Quality: 95, Recursive: true, Subfolder: true}, &out)

	if sum.Total() != 1 {
		t.Errorf("total = %d, want 1 (output folders must not be scanned)", sum.Total())
	}
}

func TestPathsMixedArguments(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"single.heic":    "s",
		"folder/in.heic": "f",
	})

	var out bytes.Buffer
	sum := Paths(&fakeConverter{}, []string{
		filepath.Join(dir, "single.heic"),
		filepath.Join(dir, "folder"),
		filepath.Join(dir, "missing.heic"),
	}, Options{Quality: 95, Subfolder: true}, &out)

	if sum.Converted != 2 {
		t.Errorf("converted = %d, want 2\noutput:\n%s", sum.Converted, out.String())
	}
	if sum.Failed != 1 {
		t.Errorf("failed = %d, want 1 (missing path)", sum.Failed)
	}
	if sum.Total() != 3 {
		t.Errorf("total = %d, want 3: every argument yields an outcome", sum.Total())
	}
}

func TestPathsOutputDirForSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"pic.heic": "p"})
	outDir := filepath.Join(dir, "elsewhere")

	var out bytes.Buffer
	sum := Paths(&fakeConverter{}, []string{filepath.Join(dir, "pic.heic")},
		Options{Quality: 95, OutputDir: outDir}, &out)

	if sum.Converted != 1 {
		t.Fatalf("converted = %d, want 1", sum.Converted)
	}
	if _, err := os.Stat(filepath.Join(outDir, "pic.jpg")); err != nil {
		t.Error("single-file output should honor --output")
	}
}
