package slots_test

import (
	"context"
	"errors"
	"sync"

	"patio-slots/internal/store"
)

var errBackendDown = errors.New("backend unavailable")

// fakeKV is an in-memory KV whose reads and writes can be made to fail.
type fakeKV struct {
	mu      sync.Mutex
	data    map[string]string
	sets    int
	failGet bool
	failSet bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failGet {
		return "", errBackendDown
	}
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSet {
		return errBackendDown
	}
	f.sets++
	f.data[key] = value
	return nil
}

func (f *fakeKV) raw(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}
