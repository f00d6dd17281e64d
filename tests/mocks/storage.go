package mocks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/davicafu/adminlab/shared/platform/storage"
)

// PNG es una cabecera PNG mínima que pasa la detección de tipo.
var PNG = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}, make([]byte, 64)...)

// MemoryStorage guarda los ficheros en un mapa.
type MemoryStorage struct {
	mu    sync.Mutex
	Files map[string][]byte
	seq   int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Files: make(map[string][]byte)}
}

func (s *MemoryStorage) Put(ctx context.Context, dir, ext string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	path := fmt.Sprintf("%s/file%d.%s", dir, s.seq, ext)
	s.Files[path] = data
	return path, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Files, path)
	return nil
}

func (s *MemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Files)
}

var _ storage.FileStorage = (*MemoryStorage)(nil)
