package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore abstracts where uploaded files live.
type FileStore interface {
	Save(name string, data io.Reader) (SavedFile, error)
	Open(fileName string) (io.ReadCloser, error)
	Delete(fileName string) error
	PublicPath(fileName string) string
}

type SavedFile struct {
	FileName string // unique name on disk
	Path     string // absolute path for internal readers
	Size     int64
}

// LocalStorage keeps uploads on the local disk under a single directory,
// served back at /uploads/<name>.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Dir() string { return s.dir }

// Save writes data under a fresh unique name, keeping the original
// extension so downstream readers can sniff the format.
func (s *LocalStorage) Save(name string, data io.Reader) (SavedFile, error) {
	ext := strings.ToLower(filepath.Ext(name))
	fileName := uuid.NewString() + ext
	path := filepath.Join(s.dir, fileName)

	f, err := os.Create(path)
	if err != nil {
		return SavedFile{}, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, data)
	if err != nil {
		os.Remove(path)
		return SavedFile{}, fmt.Errorf("write file: %w", err)
	}

	return SavedFile{FileName: fileName, Path: path, Size: size}, nil
}

func (s *LocalStorage) Open(fileName string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(fileName)))
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (s *LocalStorage) Delete(fileName string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(fileName)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) PublicPath(fileName string) string {
	return "/uploads/" + fileName
}
