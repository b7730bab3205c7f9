package asset

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSStore implements Store on a MongoDB GridFS bucket.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

// NewGridFSStore opens (or creates) the named bucket on the database.
func NewGridFSStore(db *mongo.Database, bucketName string) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

func (s *GridFSStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetReadDeadline(deadline); err != nil {
			return nil, 0, "", fmt.Errorf("failed to set read deadline: %w", err)
		}
	}

	stream, err := s.bucket.OpenDownloadStreamByName(key)
	if err == gridfs.ErrFileNotFound {
		return nil, 0, "", ErrNotFound
	}
	if err != nil {
		return nil, 0, "", fmt.Errorf("failed to open asset %q: %w", key, err)
	}

	file := stream.GetFile()
	etag := ""
	if oid, ok := file.ID.(primitive.ObjectID); ok {
		etag = `"` + oid.Hex() + `"`
	}
	return stream, file.Length, etag, nil
}
