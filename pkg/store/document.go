// Package store provides the durable record stores used by the moderation core.
//
// A Document is one JSON document held in memory and persisted as a whole on
// every mutation. All mutations of a document are serialized by one mutex, so
// the load-modify-save cycle never loses updates. A mutation works on a copy
// that replaces the live value only after the save succeeded.
package store

import (
	"fmt"
	"os"
	"sync"

	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/goccy/go-json"
)

// Backend persists whole documents by name
type Backend interface {
	Load(name string) ([]byte, error)
	Save(name string, data []byte) error
}

// Document is a persisted value of type T. T must be a pointer type that
// go-json can decode into, such as *OrderedMap[V].
type Document[T any] struct {
	name    string
	backend Backend
	empty   func() T

	mu    sync.RWMutex
	value T
}

// OpenDocument loads the named document from backend. Missing or unreadable
// documents start empty.
func OpenDocument[T any](name string, backend Backend, empty func() T) *Document[T] {
	d := &Document[T]{
		name:    name,
		backend: backend,
		empty:   empty,
		value:   empty(),
	}
	d.load()
	return d
}

func (d *Document[T]) load() {
	data, err := d.backend.Load(d.name)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug(fmt.Sprintf("Documento '%s' no existe, se iniciará vacío", d.name), "Store")
		} else {
			logger.Warn(fmt.Sprintf("No se pudo leer '%s' (%v), se iniciará vacío", d.name, err), "Store")
		}
		return
	}
	if len(data) == 0 {
		return
	}

	value := d.empty()
	if err := json.Unmarshal(data, value); err != nil {
		logger.Warn(fmt.Sprintf("Documento '%s' corrupto (%v), se iniciará vacío", d.name, err), "Store")
		return
	}
	d.value = value
}

// Name returns the document name
func (d *Document[T]) Name() string {
	return d.name
}

// Read calls fn with the live value under a read lock. fn must not modify it.
func (d *Document[T]) Read(fn func(T)) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn(d.value)
}

// Update applies fn to a copy of the document and persists the copy. If fn
// fails nothing is saved; if the save fails the error wraps
// ErrStorageUnavailable and the previous value stays in place.
func (d *Document[T]) Update(fn func(T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next, err := d.clone()
	if err != nil {
		return err
	}
	if err := fn(next); err != nil {
		return err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", d.name, err)
	}
	if err := d.backend.Save(d.name, data); err != nil {
		logger.Error(fmt.Sprintf("Error guardando '%s': %v", d.name, err), "Store")
		return fmt.Errorf("saving %s: %w: %v", d.name, pgerrors.ErrStorageUnavailable, err)
	}

	d.value = next
	return nil
}

// Snapshot returns the encoded document
func (d *Document[T]) Snapshot() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return json.Marshal(d.value)
}

func (d *Document[T]) clone() (T, error) {
	next := d.empty()
	data, err := json.Marshal(d.value)
	if err != nil {
		return next, fmt.Errorf("copying %s: %w", d.name, err)
	}
	if err := json.Unmarshal(data, next); err != nil {
		return next, fmt.Errorf("copying %s: %w", d.name, err)
	}
	return next, nil
}
