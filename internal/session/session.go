// Package session scopes one batch of uploaded conversions to one later
// archive download. Each session owns a uniquely named temporary
// directory; the directory is deleted exactly once, either after the
// archive is handed off or when the session expires.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/codec"
	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/convert"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for unknown, already-downloaded, or
	// expired session IDs.
	ErrNotFound = errors.New("session not found")
	// ErrEmptyArchive is returned when a session holds no converted
	// files to archive.
	ErrEmptyArchive = errors.New("no converted files to archive")
	// ErrAlreadyPopulated is returned when a session receives a second
	// conversion batch.
	ErrAlreadyPopulated = errors.New("session already populated")
)

type entry struct {
	dir       string
	populated bool
	lastUsed  time.Time
}

// Manager tracks live sessions. Directories live under its own base in
// the system temp dir, never under anything a web route serves.
type Manager struct {
	baseDir string
	conv    codec.Converter

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewManager creates a session manager storing session directories under
// baseDir. An empty baseDir selects a subdirectory of os.TempDir().
func NewManager(conv codec.Converter, baseDir string) (*Manager, error) {
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "heic2jpg")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create session base dir: %w", err)
	}
	return &Manager{
		baseDir:  baseDir,
		conv:     conv,
		sessions: make(map[string]*entry),
	}, nil
}

// Create allocates a fresh session directory and returns its opaque ID.
func (m *Manager) Create() (string, error) {
	id := uuid.NewString()
	dir := filepath.Join(m.baseDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = &entry{dir: dir, lastUsed: time.Now()}
	m.mu.Unlock()

	return id, nil
}

// Populate converts the uploaded batch and writes successful outputs
// into the session directory. Duplicate output base names get a numeric
// suffix. One result is returned per request, in input order; a write
// failure downgrades that request's result to a failure.
func (m *Manager) Populate(id string, reqs []convert.Request, quality int) ([]convert.Result, error) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok && e.populated {
		m.mu.Unlock()
		return nil, ErrAlreadyPopulated
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	results := convert.Batch(m.conv, reqs, quality)

	counter := make(map[string]int)
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		name := dedupeName(counter, r.Name)
		if err := os.WriteFile(filepath.Join(e.dir, name), r.Data, 0o644); err != nil {
			r.Err = fmt.Errorf("write output: %w", err)
			continue
		}
		r.Output = name
	}

	m.mu.Lock()
	e.populated = true
	e.lastUsed = time.Now()
	m.mu.Unlock()

	return results, nil
}

// dedupeName swaps the extension for .jpg and appends _1, _2, ... for
// repeated base names within one session.
func dedupeName(counter map[string]int, original string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	n, seen := counter[base]
	if !seen {
		counter[base] = 0
		return base + ".jpg"
	}
	counter[base] = n + 1
	return fmt.Sprintf("%s_%d.jpg", base, n+1)
}

// Expire removes the session and its directory. Unknown IDs are a no-op,
// so the call is idempotent.
func (m *Manager) Expire(id string) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if ok {
		m.removeDir(id, e.dir)
	}
}

// Sweep expires every session idle longer than maxIdle and returns how
// many were removed.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	expired := make(map[string]*entry)
	for id, e := range m.sessions {
		if e.lastUsed.Before(cutoff) {
			expired[id] = e
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for id, e := range expired {
		m.removeDir(id, e.dir)
	}
	return len(expired)
}

// removeDir deletes a session directory. Cleanup is best-effort: a
// filesystem error is logged and never propagated.
func (m *Manager) removeDir(id, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Session cleanup failed", "session_id", id, "dir", dir, "err", err)
	}
}
