package testutil

import (
	"context"
	"fmt"
	"sync"

	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/s3"
)

var _ s3.Service = (*MockBlobStore)(nil)

// MockBlobStore keeps uploaded objects in a map keyed the way the real store
// keys them.
type MockBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// UploadErr, when set, fails every upload.
	UploadErr error
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{objects: make(map[string][]byte)}
}

func (m *MockBlobStore) key(id string, objType s3.ObjectType) string {
	return fmt.Sprintf("%s/%s", objType, id)
}

func (m *MockBlobStore) UploadObject(ctx context.Context, object *s3.Object) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key := m.key(object.ID, object.Type)
	m.objects[key] = object.Data
	return key, nil
}

func (m *MockBlobStore) GetObject(ctx context.Context, id string, objType s3.ObjectType) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[m.key(id, objType)]
	if !ok {
		return nil, ierr.NewError("object not found").Mark(ierr.ErrNotFound)
	}
	return data, nil
}

func (m *MockBlobStore) GetPresignedUrl(ctx context.Context, id string, objType s3.ObjectType) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.key(id, objType)
	if _, ok := m.objects[key]; !ok {
		return "", ierr.NewError("object not found").Mark(ierr.ErrNotFound)
	}
	return "https://blob.test/" + key, nil
}

func (m *MockBlobStore) Exists(ctx context.Context, id string, objType s3.ObjectType) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.objects[m.key(id, objType)]
	return ok, nil
}

func (m *MockBlobStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects = make(map[string][]byte)
	m.UploadErr = nil
}
