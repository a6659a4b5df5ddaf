package filestore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const weakChunk = 4 * 1024

// PathFromID derives the physical location of a stored file from its id alone:
// <root>/<id[0:2]>/<id[2:4]>/<id>.
func PathFromID(root, id string) string {
	if len(id) < 4 {
		return filepath.Join(root, id)
	}
	return filepath.Join(root, id[0:2], id[2:4], id)
}

// WeakHash is SHA-256 over the first and last 4 KiB, or over the whole
// content when it is at most 8 KiB. It is only a pre-filter.
func WeakHash(r io.ReaderAt, size int64) (string, error) {
	h := sha256.New()
	if size <= 2*weakChunk {
		if _, err := io.Copy(h, io.NewSectionReader(r, 0, size)); err != nil {
			return "", err
		}
		return hex.EncodeToString(h.Sum(nil)), nil
	}
	if _, err := io.Copy(h, io.NewSectionReader(r, 0, weakChunk)); err != nil {
		return "", err
	}
	if _, err := io.Copy(h, io.NewSectionReader(r, size-weakChunk, weakChunk)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// StrongHash is the SHA-256 of the whole stream; it is the file id.
func StrongHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashFile(path string) (weak, strong string, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", "", 0, err
	}
	size = info.Size()
	if weak, err = WeakHash(f, size); err != nil {
		return "", "", 0, fmt.Errorf("weak hash: %w", err)
	}
	if strong, err = StrongHash(io.NewSectionReader(f, 0, size)); err != nil {
		return "", "", 0, fmt.Errorf("strong hash: %w", err)
	}
	return weak, strong, size, nil
}
