package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"sync"

	"plainchat/errors"
)

// FileAccumulator writes downloads to temporary files while hashing them.
// Several transfers run at once; each is keyed by its download task id.
type FileAccumulator struct {
	tempDir string
	mu      sync.Mutex
	active  map[string]*accumulation
}

type accumulation struct {
	handle *os.File
	hash   hash.Hash
	size   int64
}

func (a *accumulation) Write(p []byte) (int, error) {
	n, err := a.handle.Write(p)
	a.hash.Write(p[:n])
	a.size += int64(n)
	return n, err
}

func NewFileAccumulator(tempDir string) (*FileAccumulator, error) {
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating download dir: %v", errors.ErrStorage, err)
	}
	return &FileAccumulator{tempDir: tempDir, active: make(map[string]*accumulation)}, nil
}

func (a *FileAccumulator) path(key string) string {
	return filepath.Join(a.tempDir, key+".tmp")
}

// Open starts a transfer. A transfer already open under key is discarded.
func (a *FileAccumulator) Open(key string) (io.Writer, error) {
	a.Abort(key)

	f, err := os.Create(a.path(key))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create temp file for %s: %v", errors.ErrStorage, key, err)
	}
	acc := &accumulation{handle: f, hash: sha256.New()}

	a.mu.Lock()
	a.active[key] = acc
	a.mu.Unlock()
	return acc, nil
}

// Finalize closes the transfer and checks its SHA-256 against expected.
// On success the caller owns the returned file; otherwise it is removed.
func (a *FileAccumulator) Finalize(key, expected string) (string, int64, error) {
	acc, ok := a.take(key)
	if !ok {
		return "", 0, fmt.Errorf("cannot finalize: no transfer open for %s", key)
	}
	path := a.path(key)
	if err := acc.handle.Close(); err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("%w: %v", errors.ErrStorage, err)
	}
	if actual := hex.EncodeToString(acc.hash.Sum(nil)); actual != expected {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("%w: got %s, want %s", errors.ErrHashMismatch, actual, expected)
	}
	return path, acc.size, nil
}

// Abort drops a transfer and its temporary file.
func (a *FileAccumulator) Abort(key string) {
	acc, ok := a.take(key)
	if !ok {
		return
	}
	_ = acc.handle.Close()
	_ = os.Remove(a.path(key))
}

func (a *FileAccumulator) take(key string) (*accumulation, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	acc, ok := a.active[key]
	delete(a.active, key)
	return acc, ok
}

func (a *FileAccumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.active)
}
