// Package store persists the bookmarks tree to the per-user bookmarks
// file: atomic UTF-8 writes, a content fingerprint so unchanged trees
// are not rewritten, and xz-compressed rotating backups of the
// previous file.
package store

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/Versemark/core/bookmarks"
	"github.com/FocuswithJustin/Versemark/core/errors"
	"github.com/FocuswithJustin/Versemark/internal/logging"
)

// DefaultBackups is how many rotated backups of the bookmarks file are
// kept.
const DefaultBackups = 3

// DefaultPath returns the per-user bookmarks file path,
// <user config dir>/versemark/bookmarks.xml.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(base, "versemark", "bookmarks.xml"), nil
}

// Store reads and writes one bookmarks file.
type Store struct {
	path    string
	backups int

	lastSum [32]byte
	hasSum  bool
}

// Option configures a Store.
type Option func(*Store)

// WithBackups sets how many rotated backups to keep; zero disables
// backups.
func WithBackups(n int) Option {
	return func(s *Store) { s.backups = n }
}

// New creates a store for the bookmarks file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, backups: DefaultBackups}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path the store writes to.
func (s *Store) Path() string { return s.path }

// Save serializes the subtree rooted at root (the zero handle for the
// whole tree) and writes it to the bookmarks file. A pending deferred
// save on the model is cancelled first. The write is skipped when the
// serialized document is identical to the last one written.
func (s *Store) Save(m *bookmarks.Model, root bookmarks.Handle) error {
	m.CancelPendingSave()

	data := m.Serialize(root)
	if data == nil {
		return errors.ErrStaleHandle
	}

	sum := blake3.Sum256(data)
	if s.hasSum && sum == s.lastSum {
		logging.SaveEvent(s.path, m.Len(), true)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.NewIO("create bookmarks dir", filepath.Dir(s.path), err)
	}
	if err := s.rotateBackups(); err != nil {
		return err
	}
	if err := writeAtomic(s.path, data); err != nil {
		return err
	}

	s.lastSum = sum
	s.hasSum = true
	logging.SaveEvent(s.path, m.Len(), false)
	return nil
}

// Load reads the bookmarks file and appends its contents under root.
// A missing file is "nothing to load": false, no error. Reports whether
// any nodes were added.
func (s *Store) Load(m *bookmarks.Model, root bookmarks.Handle) (bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.NewIO("read bookmarks", s.path, err)
	}
	ok, err := m.LoadDocument(data, root)
	if err != nil {
		return false, err
	}
	if ok {
		logging.LoadEvent(s.path, m.Len())
	}
	return ok, nil
}

// Attach wires the model's deferred save to this store: any mutation
// schedules a whole-tree save after delay. Attaching a model that
// already has autosave panics, keeping the one-trigger-per-model
// contract.
func (s *Store) Attach(m *bookmarks.Model, delay time.Duration) {
	m.SetAutosave(delay, func() {
		if err := s.Save(m, bookmarks.Handle{}); err != nil {
			logging.Error("deferred save failed", "path", s.path, "error", err)
		}
	})
}

// backupPath returns the n-th rotated backup path, <path>.<n>.xz.
func (s *Store) backupPath(n int) string {
	return s.path + "." + strconv.Itoa(n) + ".xz"
}

// rotateBackups compresses the current bookmarks file to <path>.1.xz,
// shifting older backups up and dropping the oldest.
func (s *Store) rotateBackups() error {
	if s.backups <= 0 {
		return nil
	}
	current, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewIO("read bookmarks for backup", s.path, err)
	}

	os.Remove(s.backupPath(s.backups))
	for n := s.backups - 1; n >= 1; n-- {
		if _, err := os.Stat(s.backupPath(n)); err == nil {
			if err := os.Rename(s.backupPath(n), s.backupPath(n+1)); err != nil {
				return errors.NewIO("rotate backup", s.backupPath(n), err)
			}
		}
	}

	f, err := os.CreateTemp(filepath.Dir(s.path), ".backup-*")
	if err != nil {
		return errors.NewIO("create backup temp file", s.path, err)
	}
	tempPath := f.Name()
	xw, err := xz.NewWriter(f)
	if err != nil {
		f.Close()
		os.Remove(tempPath)
		return errors.Wrap(err, "create xz writer")
	}
	if _, err := xw.Write(current); err != nil {
		xw.Close()
		f.Close()
		os.Remove(tempPath)
		return errors.NewIO("write backup", tempPath, err)
	}
	if err := xw.Close(); err != nil {
		f.Close()
		os.Remove(tempPath)
		return errors.Wrap(err, "close xz writer")
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("close backup", tempPath, err)
	}
	if err := os.Rename(tempPath, s.backupPath(1)); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("place backup", s.backupPath(1), err)
	}
	return nil
}

// writeAtomic writes data to path through a same-directory temp file
// and rename.
func writeAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".bookmarks-*")
	if err != nil {
		return errors.NewIO("create temp file", path, err)
	}
	tempPath := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tempPath)
		return errors.NewIO("write bookmarks", tempPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("close bookmarks", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("place bookmarks", path, err)
	}
	return nil
}
