// Package storage saves uploaded images under the public /uploads prefix and
// removes them when their owning catalog entity goes away.
package storage

import (
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cabzii/internal/domain"
)

// PublicPrefix is the URL prefix stored in documents and served statically.
const PublicPrefix = "/uploads"

type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domain.InternalError{Msg: "create upload dir", Err: err}
	}
	return &FileStore{Dir: dir}, nil
}

// Save writes an uploaded file under a fresh uuid name, keeping the original
// extension, and returns its public path ("/uploads/<name>").
func (s *FileStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", domain.ValidationError{Field: "file", Msg: "unreadable upload", Err: err}
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", domain.InternalError{Msg: "store upload", Err: err}
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", domain.InternalError{Msg: "store upload", Err: err}
	}
	return PublicPrefix + "/" + name, nil
}

// Remove deletes a stored file by its public path. Already-absent files are
// expected (double deletes, manual cleanup) and swallowed; anything else is
// logged and otherwise ignored so entity deletion never fails on disk state.
func (s *FileStore) Remove(publicPath string) {
	if !strings.HasPrefix(publicPath, PublicPrefix+"/") {
		return
	}
	rel := strings.TrimPrefix(publicPath, PublicPrefix+"/")
	err := os.Remove(filepath.Join(s.Dir, filepath.Base(rel)))
	if err != nil && !os.IsNotExist(err) {
		log.Printf("[STORAGE] action=remove path=%s err=%v", publicPath, err)
	}
}
