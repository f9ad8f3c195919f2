// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package swapchain

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Registry associates the handles of one object category with the layer's
// records for them. Each Registry has its own lock; every operation takes it,
// and a Token returned by Lookup or All keeps holding it until released.
type Registry[H Handle, R any] struct {
	name    string
	level   Level
	mutex   sync.Mutex
	records map[H]*R
}

// NewRegistry returns an empty registry. name is used in errors and logs and
// level is the registry's position in the lock order.
func NewRegistry[H Handle, R any](name string, level Level) *Registry[H, R] {
	return &Registry[H, R]{
		name:    name,
		level:   level,
		records: map[H]*R{},
	}
}

// Name returns the name of the registry.
func (r *Registry[H, R]) Name() string { return r.name }

// Level returns the registry's position in the lock order.
func (r *Registry[H, R]) Level() Level { return r.level }

// lock acquires the registry lock and returns the function that releases it.
func (r *Registry[H, R]) lock(ctx context.Context) func() {
	held := getHeld(ctx)
	if held != nil {
		held.push(ctx, r.level)
	}
	r.mutex.Lock()
	return func() {
		r.mutex.Unlock()
		if held != nil {
			held.pop(r.level)
		}
	}
}

func (r *Registry[H, R]) notFound(h H) error {
	return errors.Wrapf(ErrNotFound, "%s %#x", r.name, uintptr(h))
}

// Insert adds the record for h.
// It fails if h is VK_NULL_HANDLE or already has a record.
func (r *Registry[H, R]) Insert(ctx context.Context, h H, record R) error {
	if h == 0 {
		return errors.Wrapf(ErrNullHandle, "%s", r.name)
	}
	unlock := r.lock(ctx)
	defer unlock()
	if _, ok := r.records[h]; ok {
		return errors.Wrapf(ErrAlreadyTracked, "%s %#x", r.name, uintptr(h))
	}
	r.records[h] = &record
	return nil
}

// Lookup returns a token granting exclusive access to the record for h,
// blocking until the registry lock is free. If h has no record the lock is
// released again and the returned error has the cause ErrNotFound.
func (r *Registry[H, R]) Lookup(ctx context.Context, h H) (*Token[R], error) {
	unlock := r.lock(ctx)
	record, ok := r.records[h]
	if !ok {
		unlock()
		return nil, r.notFound(h)
	}
	return newToken(record, unlock), nil
}

// Erase removes the record for h.
// Callers must not hold a token for h; Erase blocks until the lock is free.
func (r *Registry[H, R]) Erase(ctx context.Context, h H) error {
	unlock := r.lock(ctx)
	defer unlock()
	if _, ok := r.records[h]; !ok {
		return r.notFound(h)
	}
	delete(r.records, h)
	return nil
}

// Take removes the record for h and returns it, all under a single
// acquisition of the lock.
func (r *Registry[H, R]) Take(ctx context.Context, h H) (R, error) {
	unlock := r.lock(ctx)
	defer unlock()
	record, ok := r.records[h]
	if !ok {
		var zero R
		return zero, r.notFound(h)
	}
	delete(r.records, h)
	return *record, nil
}

// All returns a token granting exclusive access to the whole table.
// It takes the same lock as Lookup, so it serializes with every other
// operation on the registry.
func (r *Registry[H, R]) All(ctx context.Context) *Token[map[H]*R] {
	unlock := r.lock(ctx)
	return newToken(&r.records, unlock)
}

// Contains returns true if h has a record.
func (r *Registry[H, R]) Contains(ctx context.Context, h H) bool {
	unlock := r.lock(ctx)
	defer unlock()
	_, ok := r.records[h]
	return ok
}

// Len returns the number of records.
func (r *Registry[H, R]) Len(ctx context.Context) int {
	unlock := r.lock(ctx)
	defer unlock()
	return len(r.records)
}
