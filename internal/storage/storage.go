// Package storage is the blob store collaborator: given a storage ref
// it produces fetchable URLs, write targets and deletes. Media records
// in the database carry only the ref; the bytes live here.
package storage

import (
	"context"
	"io"
)

// BlobStore abstracts the object store holding media bytes
type BlobStore interface {
	// SignedUploadURL returns a time-bounded URL the caller can PUT
	// bytes to. Step one of the two-step upload.
	SignedUploadURL(ctx context.Context, ref, contentType string) (string, error)

	// URL resolves a storage ref to a time-bounded access URL. Returns
	// an empty URL and no error when the object does not exist.
	URL(ctx context.Context, ref string) (string, error)

	// Upload writes bytes directly and returns once the object is stored
	Upload(ctx context.Context, ref, contentType string, body io.Reader) error

	// Delete removes the stored bytes. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, ref string) error
}
