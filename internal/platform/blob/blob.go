// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package blob stores opaque file bodies outside the relational database.
//
// # Architecture
//
// Repositories keep metadata in PostgreSQL and hand large bodies to a [Store].
// Two implementations exist: [S3Store] for any S3-compatible bucket (AWS, R2,
// MinIO) and [MemoryStore] for the demo data source and tests.
package blob

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("blob: object not found")

// Object is a stored body plus the content type it was written with.
type Object struct {
	Body        []byte
	ContentType string
}

// Store persists bodies under caller-chosen keys.
type Store interface {
	Put(context context.Context, key string, object Object) error
	Get(context context.Context, key string) (*Object, error)
	Delete(context context.Context, key string) error
}

// MemoryStore is a process-local [Store].
type MemoryStore struct {
	mutex   sync.RWMutex
	objects map[string]Object
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]Object)}
}

// Put implements [Store].
func (store *MemoryStore) Put(_ context.Context, key string, object Object) error {
	body := make([]byte, len(object.Body))
	copy(body, object.Body)

	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.objects[key] = Object{Body: body, ContentType: object.ContentType}
	return nil
}

// Get implements [Store].
func (store *MemoryStore) Get(_ context.Context, key string) (*Object, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	object, found := store.objects[key]
	if !found {
		return nil, ErrNotFound
	}
	return &object, nil
}

// Delete implements [Store]. Deleting a missing key is not an error.
func (store *MemoryStore) Delete(_ context.Context, key string) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	delete(store.objects, key)
	return nil
}
