package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"petawards/constant"
)

var ErrObjectNotFound = errors.New("object not found")

// Object is one stored blob as reported by the provider. Key is the opaque
// provider identifier used for retrieval and deletion; Name is the
// client-supplied filename and the sole correlation key between videos,
// metadata sidecars and favorite markers.
type Object struct {
	Key        string
	Name       string
	ID         string
	Size       int64
	UploadedAt time.Time
	Status     constant.ObjectStatus
}

// Store is the object-storage surface the services run against.
type Store interface {
	// ListAll returns every object in the bucket in one pass.
	ListAll(ctx context.Context) ([]Object, error)
	// Put uploads a new object under a fresh provider key and returns its
	// record. Objects are never mutated in place.
	Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (Object, error)
	// Fetch reads an object's full body by provider key.
	Fetch(ctx context.Context, key string) ([]byte, error)
	// Remove deletes an object by provider key.
	Remove(ctx context.Context, key string) error
	// URL derives the public retrieval URL from a provider key. Purely
	// deterministic: a fixed template, no signing, no expiry.
	URL(key string) string
}
