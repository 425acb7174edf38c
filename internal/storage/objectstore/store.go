package objectstore

import (
	"context"
	"time"
)

// Store hands out presigned URLs for artifact content. Content bytes never
// pass through the API service: clients upload and download directly against
// the object store with the returned URLs.
type Store interface {
	PresignPut(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
