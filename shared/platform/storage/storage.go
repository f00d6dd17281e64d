package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/h2non/filetype"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
)

// MaxImageSize es el tamaño máximo aceptado para imágenes subidas (2 MB).
const MaxImageSize = 2 << 20

// ErrInvalidImage se devuelve cuando el fichero no es una imagen aceptada.
var ErrInvalidImage = fmt.Errorf("image must be a file of type: jpeg, png, jpg, gif (max 2MB): %w", sharedDomain.ErrInvalidInput)

var allowedImages = map[string]bool{"jpg": true, "png": true, "gif": true}

// Upload es un fichero recibido del cliente.
type Upload struct {
	Name   string // nombre original
	Size   int64
	Reader io.Reader
}

// StoredFile describe dónde quedó guardado un fichero.
type StoredFile struct {
	Path         string `json:"path"` // relativo a la raíz del almacenamiento
	OriginalName string `json:"original_name"`
	MIME         string `json:"mime"`
}

// FileStorage guarda y borra ficheros por ruta relativa.
type FileStorage interface {
	Put(ctx context.Context, dir, ext string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// PutImage valida que up sea una imagen permitida y la guarda bajo dir.
func PutImage(ctx context.Context, fs FileStorage, dir string, up Upload) (StoredFile, error) {
	if up.Reader == nil || up.Size <= 0 || up.Size > MaxImageSize {
		return StoredFile{}, ErrInvalidImage
	}

	buf := bufio.NewReader(io.LimitReader(up.Reader, MaxImageSize+1))
	head, err := buf.Peek(261)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return StoredFile{}, fmt.Errorf("read upload header: %w", err)
	}

	kind, err := filetype.Match(head)
	if err != nil || !allowedImages[kind.Extension] {
		return StoredFile{}, ErrInvalidImage
	}

	path, err := fs.Put(ctx, dir, kind.Extension, buf)
	if err != nil {
		return StoredFile{}, err
	}
	return StoredFile{Path: path, OriginalName: up.Name, MIME: kind.MIME.Value}, nil
}
