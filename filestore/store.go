// Package filestore owns the uploads directory. Every filesystem side effect
// of the API lives here; handlers never touch the disk themselves.
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is reported when the named file isn't present in the store.
var ErrNotFound = errors.New("no such file in the store")

// Store keeps uploaded files in a single flat directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir, creating the directory when absent.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Has tells whether the named file exists in the store.
func (s *Store) Has(name string) bool {
	if name = sanitize(name); len(name) == 0 {
		return false
	}

	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// Save writes the payload under the given name. On a name collision the file
// is stored as "name(1).ext", "name(2).ext" and so on instead. Returns the
// name the file ended up with.
func (s *Store) Save(name string, payload []byte) (stored string, err error) {
	name = sanitize(name)
	if len(name) == 0 {
		return "", ErrNotFound
	}

	stored = s.dedupe(name)

	return stored, os.WriteFile(filepath.Join(s.dir, stored), payload, 0o644)
}

// Rename renames a stored file in place.
func (s *Store) Rename(oldName, newName string) error {
	oldName, newName = sanitize(oldName), sanitize(newName)
	if len(newName) == 0 {
		return ErrNotFound
	}
	if !s.Has(oldName) {
		return ErrNotFound
	}

	return os.Rename(filepath.Join(s.dir, oldName), filepath.Join(s.dir, newName))
}

// Remove deletes a stored file.
func (s *Store) Remove(name string) error {
	name = sanitize(name)
	if !s.Has(name) {
		return ErrNotFound
	}

	return os.Remove(filepath.Join(s.dir, name))
}

// Read returns the whole content of a stored file along with its metadata.
func (s *Store) Read(name string) ([]byte, fs.FileInfo, error) {
	name = sanitize(name)
	if !s.Has(name) {
		return nil, nil, ErrNotFound
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	return payload, info, nil
}

// MIME guesses the media type of a stored file by its extension.
func MIME(name string) string {
	return mime.TypeByExtension(filepath.Ext(name))
}

// Extension guesses a file extension (dot included) for the media type.
// Empty when the type is unknown.
func Extension(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ""
	}

	return exts[0]
}

// dedupe finds a free variation of the name by appending "(n)" to its stem.
func (s *Store) dedupe(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name

	for i := 1; s.Has(candidate); i++ {
		candidate = fmt.Sprintf("%s(%d)%s", stem, i, ext)
	}

	return candidate
}

// sanitize reduces the name to its last path element, so names can't escape
// the store's directory.
func sanitize(name string) string {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}

	return name
}
