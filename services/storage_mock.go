package services

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MockStorage is an in-memory ObjectStorage for testing
type MockStorage struct {
	objects map[string][]byte
	mu      sync.RWMutex
}

// NewMockStorage creates an empty mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{objects: make(map[string][]byte)}
}

// SetAsMockForTesting installs an image service backed by this storage
func (m *MockStorage) SetAsMockForTesting() {
	InitImageService(m)
}

func (m *MockStorage) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	content, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	m.mu.Lock()
	m.objects[key] = content
	m.mu.Unlock()
	return nil
}

func (m *MockStorage) URL(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	_, exists := m.objects[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("image not found: %s", key)
	}
	return fmt.Sprintf("https://mock-bucket.s3.amazonaws.com/products/%s", key), nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Exists reports whether key has been stored
func (m *MockStorage) Exists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

// Len returns the number of stored objects
func (m *MockStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
