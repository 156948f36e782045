package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"
	"zapzap/backend/internal/model"

	"github.com/google/uuid"
)

// LocalStorage writes uploads to a directory served statically under
// /uploads. Files get a random hex name with the original extension so
// nothing user-controlled ends up in the filesystem path.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(ctx context.Context, r io.Reader, filename, contentType string, size int64, uploadedBy, targetID string) (*model.FileMetadata, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}
	name := hex.EncodeToString(buf[:]) + filepath.Ext(filename)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &model.FileMetadata{
		ID:          uuid.NewString(),
		Filename:    filename,
		Size:        written,
		ContentType: contentType,
		StoredPath:  path.Join("uploads", name),
		UploadedBy:  uploadedBy,
		TargetID:    targetID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
