package ports

import (
	"context"
	"io"
)

// StoredImage is an image opened for reading.
type StoredImage struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ImageStore persists uploaded event images.
type ImageStore interface {
	// Save stores the upload and returns the public reference for it.
	Save(ctx context.Context, upload ImageUpload) (string, error)
	// Open returns the image with the given id or domain.ErrImageNotFound.
	Open(ctx context.Context, id string) (*StoredImage, error)
	// Delete removes the image behind a reference returned by Save.
	Delete(ctx context.Context, ref string) error
}
