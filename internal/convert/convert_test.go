package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/codec"
)

// fakeConverter implements codec.Converter for testing. Inputs whose
// content starts with "bad" fail with a decode error; everything else
// yields canned JPEG-stand-in bytes.
type fakeConverter struct{}

func (f *fakeConverter) Convert(data []byte, quality int) ([]byte, error) {
	if bytes.HasPrefix(data, []byte("bad")) {
		return nil, fmt.Errorf("%w: corrupt input", codec.ErrDecode)
	}
	return []byte(fmt.Sprintf("jpeg[q=%d]:%s", quality, data)), nil
}

func TestBatchOneResultPerRequestInOrder(t *testing.T) {
	reqs := []Request{
		{Name: "a.heic", Data: []byte("first")},
		{Name: "b.heic", Data: []byte("bad pixels")},
		{Name: "c.heic", Data: []byte("third")},
		{Name: "d.heic", Data: nil},
	}

	results := Batch(&fakeConverter{}, reqs, 95)

	if len(results) != len(reqs) {
		t.Fatalf("got %d results, want %d", len(results), len(reqs))
	}
	for i, r := range results {
		if r.Name != reqs[i].Name {
			t.Errorf("result %d name = %q, want %q", i, r.Name, reqs[i].Name)
		}
	}

	if !results[0].Succeeded() || !results[2].Succeeded() {
		t.Error("valid inputs should succeed despite sibling failures")
	}
	if results[1].Succeeded() {
		t.Error("corrupt input should fail")
	}
	if results[3].Succeeded() {
		t.Error("empty input should fail")
	}
}

func TestIsHEIC(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.heic", true},
		{"photo.HEIC", true},
		{"photo.Heif", true},
		{"photo.heif", true},
		{"photo.jpg", false},
		{"photo.heic.txt", false},
		{"heic", false},
	}

	for _, tt := range tests {
		if got := IsHEIC(tt.name); got != tt.want {
			t.Errorf("IsHEIC(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.heic", "photo.jpg"},
		{"IMG_0001.HEIC", "IMG_0001.jpg"},
		{"archive.tar.heif", "archive.tar.jpg"},
	}

	for _, tt := range tests {
		if got := OutputName(tt.in); got != tt.want {
			t.Errorf("OutputName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFile(t *testing.T) {
	t.Run("converts into new output dir", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "photo.heic")
		if err := os.WriteFile(src, []byte("pixels"), 0o644); err != nil {
			t.Fatal(err)
		}

		outDir := filepath.Join(dir, "out")
		r := File(&fakeConverter{}, src, outDir, 80)

		if r.Status != StatusConverted {
			t.Fatalf("status = %q, want converted (err: %v)", r.Status, r.Err)
		}
		data, err := os.ReadFile(filepath.Join(outDir, "photo.jpg"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "jpeg[q=80]:pixels" {
			t.Errorf("unexpected output contents: %q", data)
		}
	})

	t.Run("skips existing output", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "photo.heic")
		if err := os.WriteFile(src, []byte("pixels"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "photo.jpg"), []byte("existing"), 0o644); err != nil {
			t.Fatal(err)
		}

		r := File(&fakeConverter{}, src, "", 95)
		if r.Status != StatusSkipped {
			t.Fatalf("status = %q, want skipped", r.Status)
		}

		data, _ := os.ReadFile(filepath.Join(dir, "photo.jpg"))
		if string(data) != "existing" {
			t.Error("existing output should not be overwritten")
		}
	})

	t.Run("missing source fails", func(t *testing.T) {
		r := File(&fakeConverter{}, filepath.Join(t.TempDir(), "nope.heic"), "", 95)
		if r.Status != StatusFailed {
			t.Fatalf("status = %q, want failed", r.Status)
		}
	})

	t.Run("decode failure", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "broken.heic")
		if err := os.WriteFile(src, []byte("bad bytes"), 0o644); err != nil {
			t.Fatal(err)
		}

		r := File(&fakeConverter{}, src, "", 95)
		if r.Status != StatusFailed {
			t.Fatalf("status = %q, want failed", r.Status)
		}
	})
}
