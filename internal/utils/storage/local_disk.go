package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type (
	// LocalDisk stores uploads under a flat directory with random
	// filenames. It is the fallback when no S3 bucket is configured.
	LocalDisk interface {
		SaveFile(file *multipart.FileHeader, allowedExt ...string) (string, error)
		Remove(filename string) error
	}

	localDisk struct {
		dir string
	}
)

func NewLocalDisk(dir string) LocalDisk {
	return &localDisk{dir: dir}
}

func (l *localDisk) SaveFile(file *multipart.FileHeader, allowedExt ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extAllowed(ext, allowedExt) {
		return "", ErrExtensionNotAllowed
	}

	if err := os.MkdirAll(l.dir, os.ModePerm); err != nil {
		return "", err
	}

	filename := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	dst, err := os.Create(filepath.Join(l.dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}

func (l *localDisk) Remove(filename string) error {
	return os.Remove(filepath.Join(l.dir, filename))
}
