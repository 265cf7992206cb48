package mocks

import (
	"context"
	"io"

	"github.com/newsroom-content-api/internal/storage"
)

// MockBlobStore is an in-memory mock of BlobStore. Objects maps storage
// refs to their resolved URLs; refs not present resolve to "".
type MockBlobStore struct {
	Objects      map[string]string
	Deleted      []string
	URLError     error
	SignError    error
	DeleteError  error
	SignedCount  int
	ResolveCount int
}

var _ storage.BlobStore = (*MockBlobStore)(nil)

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{Objects: make(map[string]string)}
}

func (m *MockBlobStore) SignedUploadURL(ctx context.Context, ref, contentType string) (string, error) {
	if m.SignError != nil {
		return "", m.SignError
	}
	m.SignedCount++
	return "https://storage.test/upload/" + ref, nil
}

func (m *MockBlobStore) URL(ctx context.Context, ref string) (string, error) {
	if m.URLError != nil {
		return "", m.URLError
	}
	m.ResolveCount++
	return m.Objects[ref], nil
}

func (m *MockBlobStore) Upload(ctx context.Context, ref, contentType string, r io.Reader) error {
	m.Objects[ref] = "https://storage.test/" + ref
	return nil
}

func (m *MockBlobStore) Delete(ctx context.Context, ref string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Objects, ref)
	m.Deleted = append(m.Deleted, ref)
	return nil
}
