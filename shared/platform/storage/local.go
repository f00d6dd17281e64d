package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage guarda los ficheros en un directorio del disco.
type LocalStorage struct {
	root string
}

var _ FileStorage = (*LocalStorage)(nil)

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

// Put escribe r en <root>/<dir>/<uuid>.<ext> y devuelve la ruta relativa.
func (s *LocalStorage) Put(ctx context.Context, dir, ext string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := filepath.ToSlash(filepath.Join(dir, uuid.NewString()+"."+ext))
	full, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", err
	}
	return rel, nil
}

// Delete borra el fichero; si ya no existe no es un error.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// resolve impide salir de la raíz con rutas tipo "../".
func (s *LocalStorage) resolve(rel string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	root := filepath.Clean(s.root)
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes storage root", rel)
	}
	return full, nil
}
