package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

const (
	imageBucket     = "event_images"
	imageRoute      = "/api/uploads/"
	transferTimeout = 30 * time.Second
)

// ImageStore keeps uploaded event images in a GridFS bucket.
type ImageStore struct {
	db *mongo.Database
}

func NewImageStore(db *mongo.Database) *ImageStore {
	return &ImageStore{db: db}
}

// bucket returns a bucket handle with deadlines for a single transfer. Handles
// are not shared because the deadlines are per-bucket state.
func (s *ImageStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(imageBucket))
	if err != nil {
		return nil, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(transferTimeout)
	}
	if err := b.SetWriteDeadline(deadline); err != nil {
		return nil, err
	}
	if err := b.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	return b, nil
}

// Save uploads the image and returns its public path.
func (s *ImageStore) Save(ctx context.Context, upload ports.ImageUpload) (string, error) {
	b, err := s.bucket(ctx)
	if err != nil {
		return "", fmt.Errorf("image bucket: %w", err)
	}

	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": upload.ContentType})
	id, err := b.UploadFromStream(upload.Filename, upload.Body, opts)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return imageRoute + id.Hex(), nil
}

func (s *ImageStore) Open(ctx context.Context, id string) (*ports.StoredImage, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrImageNotFound
	}
	b, err := s.bucket(ctx)
	if err != nil {
		return nil, fmt.Errorf("image bucket: %w", err)
	}

	stream, err := b.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("open image: %w", err)
	}

	file := stream.GetFile()
	contentType := "application/octet-stream"
	if v, err := file.Metadata.LookupErr("contentType"); err == nil {
		if ct, ok := v.StringValueOK(); ok && ct != "" {
			contentType = ct
		}
	}
	return &ports.StoredImage{Body: stream, ContentType: contentType, Size: file.Length}, nil
}

// Delete removes a stored image. Unknown references are a no-op.
func (s *ImageStore) Delete(ctx context.Context, ref string) error {
	oid, ok := imageID(ref)
	if !ok {
		return nil
	}
	b, err := s.bucket(ctx)
	if err != nil {
		return fmt.Errorf("image bucket: %w", err)
	}
	if err := b.Delete(oid); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// imageID extracts the GridFS file id from a public image path.
func imageID(ref string) (primitive.ObjectID, bool) {
	hex, ok := strings.CutPrefix(ref, imageRoute)
	if !ok {
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
