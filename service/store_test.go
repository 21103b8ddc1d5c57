package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"petawards/constant"
	"petawards/storage"
)

// fakeStore is an in-memory storage.Store for service tests.
type fakeStore struct {
	mu       sync.Mutex
	objects  []storage.Object
	bodies   map[string][]byte
	fetchErr map[string]error
	listErr  error
	seq      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bodies:   make(map[string][]byte),
		fetchErr: make(map[string]error),
	}
}

// addObject registers an object under an explicit id, key "{id}/{name}".
func (f *fakeStore) addObject(id, name string, body []byte) storage.Object {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj := storage.Object{
		Key:        id + "/" + name,
		Name:       name,
		ID:         id,
		Size:       int64(len(body)),
		UploadedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:     constant.ObjectStatusUploaded,
	}
	f.objects = append(f.objects, obj)
	f.bodies[obj.Key] = body
	return obj
}

func (f *fakeStore) ListAll(ctx context.Context) ([]storage.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]storage.Object, len(f.objects))
	copy(out, f.objects)
	return out, nil
}

func (f *fakeStore) Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (storage.Object, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return storage.Object{}, err
	}
	f.mu.Lock()
	f.seq++
	id := fmt.Sprintf("obj-%d", f.seq)
	f.mu.Unlock()
	return f.addObject(id, name, body), nil
}

func (f *fakeStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fetchErr[key]; ok {
		return nil, err
	}
	body, ok := f.bodies[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return body, nil
}

func (f *fakeStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, obj := range f.objects {
		if obj.Key == key {
			f.objects = append(f.objects[:i], f.objects[i+1:]...)
			delete(f.bodies, key)
			return nil
		}
	}
	return storage.ErrObjectNotFound
}

func (f *fakeStore) URL(key string) string {
	return "https://files.example.com/pets/" + key
}
