package session

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Archive bundles every converted file in the session into a ZIP and
// consumes the session: whether archiving succeeds or fails, the
// session directory is removed and the ID becomes invalid, so a second
// call returns ErrNotFound.
func (m *Manager) Archive(id string) ([]byte, error) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	defer m.removeDir(id, e.dir)

	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("read session dir: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := 0
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		if err := addFile(zw, filepath.Join(e.dir, de.Name()), de.Name()); err != nil {
			zw.Close()
			return nil, err
		}
		files++
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	if files == 0 {
		return nil, ErrEmptyArchive
	}
	return buf.Bytes(), nil
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("add %s to archive: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("write %s to archive: %w", name, err)
	}
	return nil
}
