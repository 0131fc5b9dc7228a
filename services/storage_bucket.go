package services

import (
	"context"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// StorageBucket fronts the upload collaborator. Posts only ever carry blob
// names this bucket has actually issued.
type StorageBucket struct {
	*storage.BucketHandle
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		bucketHandle,
	}, nil
}

func (sb *StorageBucket) Exists(ctx context.Context, blobName string) (bool, error) {
	if len(blobName) == 0 {
		return false, nil
	}
	handle := sb.Object(blobName)
	if _, err := handle.Attrs(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AllExist reports whether every blob name has been uploaded. Used to vet
// media and document payloads before a post is accepted.
func (sb *StorageBucket) AllExist(ctx context.Context, blobNames []string) (bool, error) {
	for _, blobName := range blobNames {
		exists, err := sb.Exists(ctx, blobName)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, nil
		}
	}
	return true, nil
}
