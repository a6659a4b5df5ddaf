//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_file_store.go -package=mocks
package filestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"plainchat/domain"
	"plainchat/domain/mimetypes"
	"plainchat/errors"
	"plainchat/internal"
	"plainchat/repositories"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

type IFileStore interface {
	ImportFile(ctx context.Context, src, mime string, deleteSrc bool) (domain.StoredFile, error)
	ImportBytes(ctx context.Context, data []byte, mime string) (domain.StoredFile, error)
	Release(ctx context.Context, id string) error
	Resolve(uri string) (string, error)
	Open(id string) (*os.File, domain.StoredFile, error)
	RealPath(id string) string
	Sweep(ctx context.Context) (int, error)
}

// Store is the content-addressable attachment store.
// Rows live in the file repository; bytes live under root at PathFromID.
type Store struct {
	root  string
	repo  repositories.IFileRepository
	locks *internal.KeyedMutex
	log   *slog.Logger
}

func NewStore(root string, repo repositories.IFileRepository, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating store root: %v", errors.ErrStorage, err)
	}
	return &Store{root: root, repo: repo, locks: internal.NewKeyedMutex(), log: log}, nil
}

func (s *Store) RealPath(id string) string { return PathFromID(s.root, id) }

// ImportFile adds the content of src to the store and returns its row with
// the reference count already taken. With deleteSrc the source is moved
// instead of copied, and removed when the content was already stored.
func (s *Store) ImportFile(ctx context.Context, src, mime string, deleteSrc bool) (domain.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredFile{}, err
	}
	weak, id, size, err := hashFile(src)
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("%w: hashing %s: %v", errors.ErrStorage, src, err)
	}

	candidates, err := s.repo.FindByWeak(size, weak)
	if err != nil {
		return domain.StoredFile{}, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	var stored domain.StoredFile
	if _, known := lo.Find(candidates, func(f domain.StoredFile) bool { return f.ID == id }); known {
		stored, err = s.reuseExisting(id, src, deleteSrc)
	} else {
		if len(candidates) > 0 {
			s.log.Debug("weak hash collision with different content", "size", size, "weak", weak, "id", id)
		}
		stored, err = s.insertNew(domain.StoredFile{
			ID:       id,
			Size:     size,
			WeakHash: weak,
			MimeType: s.detectMime(src, mime),
			RealPath: s.RealPath(id),
		}, src, deleteSrc)
	}
	if err != nil {
		return domain.StoredFile{}, err
	}
	if deleteSrc {
		s.removeSource(src)
	}
	return stored, nil
}

// ImportBytes spools data to a temporary file inside the store root and imports it with move semantics.
func (s *Store) ImportBytes(ctx context.Context, data []byte, mime string) (domain.StoredFile, error) {
	if mime == "" {
		mime = mimetype.Detect(data).String()
	}
	tmp, err := os.CreateTemp(s.root, "import-*")
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("%w: %v", errors.ErrStorage, err)
	}
	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return domain.StoredFile{}, fmt.Errorf("%w: %v", errors.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return domain.StoredFile{}, fmt.Errorf("%w: %v", errors.ErrStorage, err)
	}
	stored, err := s.ImportFile(ctx, tmp.Name(), mime, true)
	if err != nil {
		_ = os.Remove(tmp.Name())
	}
	return stored, err
}

func (s *Store) reuseExisting(id, src string, deleteSrc bool) (domain.StoredFile, error) {
	target := s.RealPath(id)
	if _, err := os.Stat(target); os.IsNotExist(err) {
		s.log.Warn("stored file missing on disk, restoring from source", "id", id)
		if err := place(src, target, deleteSrc); err != nil {
			return domain.StoredFile{}, fmt.Errorf("%w: restoring %s: %v", errors.ErrStorage, id, err)
		}
	}
	return s.repo.Increment(id)
}

func (s *Store) insertNew(file domain.StoredFile, src string, deleteSrc bool) (domain.StoredFile, error) {
	target := file.RealPath
	_, statErr := os.Stat(target)
	placedHere := os.IsNotExist(statErr)
	if placedHere {
		if err := place(src, target, deleteSrc); err != nil {
			return domain.StoredFile{}, fmt.Errorf("%w: writing %s: %v", errors.ErrStorage, file.ID, err)
		}
	}

	stored, created, err := s.repo.InsertOrIncrement(file)
	if err != nil {
		if placedHere {
			s.unplace(src, target)
		}
		return domain.StoredFile{}, err
	}
	if !created {
		s.log.Debug("concurrent insert detected, reference added instead", "id", file.ID)
	}
	return stored, nil
}

// Release drops one reference. At zero the physical file goes first, then the row.
// A failed physical delete keeps the row so the sweeper can retry.
func (s *Store) Release(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	file, err := s.repo.Decrement(id)
	if err != nil {
		return err
	}
	if file.RefCount > 0 {
		return nil
	}
	return s.purge(file)
}

func (s *Store) purge(file domain.StoredFile) error {
	if err := os.Remove(s.RealPath(file.ID)); err != nil && !os.IsNotExist(err) {
		s.log.Error("unable to delete stored file, keeping row for retry", "id", file.ID, "error", err)
		return nil
	}
	return s.repo.Delete(file.ID)
}

// Sweep deletes every row left at refCount zero by an earlier failed release.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	orphans, err := s.repo.ListOrphans()
	if err != nil {
		return 0, err
	}
	swept := 0
	for _, orphan := range orphans {
		if ctx.Err() != nil {
			return swept, ctx.Err()
		}
		if s.sweepOne(orphan.ID) {
			swept++
		}
	}
	return swept, nil
}

func (s *Store) sweepOne(id string) bool {
	unlock := s.locks.Lock(id)
	defer unlock()

	file, err := s.repo.Get(id)
	if err != nil || file.RefCount > 0 {
		return false
	}
	if err := s.purge(file); err != nil {
		s.log.Error("sweep failed", "id", id, "error", err)
		return false
	}
	_, err = s.repo.Get(id)
	return errors.Is(err, errors.ErrFileNotFound)
}

// Resolve maps an attachment URI to a local path. fid: URIs resolve without any lookup.
func (s *Store) Resolve(uri string) (string, error) {
	switch {
	case strings.HasPrefix(uri, domain.LocalFileScheme):
		return s.RealPath(strings.TrimPrefix(uri, domain.LocalFileScheme)), nil
	case strings.HasPrefix(uri, domain.RemoteFileScheme):
		return "", fmt.Errorf("%w: %s is not downloaded yet", errors.ErrFileNotFound, uri)
	case filepath.IsAbs(uri):
		return uri, nil
	default:
		return "", fmt.Errorf("%w: unsupported uri %q", errors.ErrFileNotFound, uri)
	}
}

// Open returns the stored bytes of id along with its row, for serving to peers.
func (s *Store) Open(id string) (*os.File, domain.StoredFile, error) {
	file, err := s.repo.Get(id)
	if err != nil {
		return nil, domain.StoredFile{}, err
	}
	if file.RefCount <= 0 {
		return nil, domain.StoredFile{}, errors.ErrFileNotFound
	}
	f, err := os.Open(s.RealPath(id))
	if os.IsNotExist(err) {
		return nil, domain.StoredFile{}, fmt.Errorf("%w: %s missing on disk", errors.ErrFileNotFound, id)
	}
	if err != nil {
		return nil, domain.StoredFile{}, fmt.Errorf("%w: %v", errors.ErrStorage, err)
	}
	return f, file, nil
}

func (s *Store) detectMime(src, declared string) string {
	if declared != "" {
		return mimetypes.Normalize(declared).String()
	}
	mt, err := mimetype.DetectFile(src)
	if err != nil {
		return mimetypes.OctetStream.String()
	}
	return mimetypes.Normalize(mt.String()).String()
}

// unplace undoes place: a moved source is renamed back, a copy is removed.
func (s *Store) unplace(src, target string) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		if err := os.Rename(target, src); err != nil {
			s.log.Error("unable to restore moved source", "path", src, "error", err)
		}
		return
	}
	_ = os.Remove(target)
}

func (s *Store) removeSource(src string) {
	if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
		s.log.Warn("unable to remove imported source", "path", src, "error", err)
	}
}

// place copies (or moves) src to target through a temp file in the target directory.
func place(src, target string, move bool) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if move {
		if err := os.Rename(src, target); err == nil {
			return nil
		}
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(target), ".part-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}
