package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

// recordSuffix names every per-character record file.
const recordSuffix = "_vendors.json"

// FileStore keeps one JSON record per character in a data directory.
type FileStore struct {
	dir  string
	opts options
}

// NewFileStore creates a file-backed store rooted at dir. The directory is
// created on demand.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}

	s := &FileStore{
		dir:  dir,
		opts: buildOptions(opts),
	}
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *FileStore) path(characterID string) (string, error) {
	key, err := storageKey(characterID)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key+recordSuffix), nil
}

// Load reads a character's vendors. A missing record is an empty collection.
func (s *FileStore) Load(ctx context.Context, characterID string) ([]*model.Vendor, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	path, err := s.path(characterID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is built from a sanitized id
	if errors.Is(err, fs.ErrNotExist) {
		return []*model.Vendor{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", common.ErrStorageUnavailable, path, err)
	}

	vendors, err := s.opts.decode(data, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return vendors, nil
}

// Save replaces a character's record. The new content is written to a
// temporary file and renamed over the old one.
func (s *FileStore) Save(ctx context.Context, characterID string, vendors []*model.Vendor) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateVendors(vendors); err != nil {
		return err
	}
	path, err := s.path(characterID)
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}

	data, err := EncodeRecord(vendors)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".vendors-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", common.ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: failed to write vendors: %v", common.ErrStorageUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: failed to sync vendors: %v", common.ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to close temp file: %v", common.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %v", common.ErrStorageUnavailable, path, err)
	}

	slog.Debug("Saved vendors", "character", characterID, "count", len(vendors), "path", path)
	return nil
}

// Exists reports whether the character has a record on disk.
func (s *FileStore) Exists(ctx context.Context, characterID string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	path, err := s.path(characterID)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return true, nil
}

// ListCharacters returns the ids of every stored record, sorted.
func (s *FileStore) ListCharacters(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list %s: %v", common.ErrStorageUnavailable, s.dir, err)
	}

	characters := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, recordSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, recordSuffix)
		if id == "" {
			continue
		}
		characters = append(characters, id)
	}
	sort.Strings(characters)
	return characters, nil
}

// Close is a no-op; files are not held open between calls.
func (s *FileStore) Close() error {
	return nil
}
