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

// noCopy makes `go vet` report copies of the structs that embed it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Token grants exclusive access to a value guarded by a registry lock.
// The lock is held from the moment the token is returned until Release is
// called, so a token is normally released with defer:
//
//	dev, err := c.Devices().Lookup(ctx, device)
//	if err != nil {
//		return err
//	}
//	defer dev.Release()
//
// A token has exactly one holder. Ownership can be handed on with Move, after
// which the original token is inert. Pointers obtained from Get must not be
// retained after the token is released.
type Token[T any] struct {
	_      noCopy
	value  *T
	unlock func()
}

func newToken[T any](value *T, unlock func()) *Token[T] {
	return &Token[T]{value: value, unlock: unlock}
}

// Get returns the guarded value.
// It panics with ErrTokenReleased if the token was released or moved.
func (t *Token[T]) Get() *T {
	if t.unlock == nil {
		panic(ErrTokenReleased)
	}
	return t.value
}

// Held returns true if the token still holds its lock.
func (t *Token[T]) Held() bool { return t != nil && t.unlock != nil }

// Release unlocks the guarded value. Releasing a token that was already
// released or moved does nothing.
func (t *Token[T]) Release() {
	if t == nil || t.unlock == nil {
		return
	}
	unlock := t.unlock
	t.value, t.unlock = nil, nil
	unlock()
}

// Move transfers the lock to a new token and returns it. The receiver no
// longer holds the lock.
func (t *Token[T]) Move() *Token[T] {
	if t.unlock == nil {
		panic(ErrTokenReleased)
	}
	out := newToken(t.value, t.unlock)
	t.value, t.unlock = nil, nil
	return out
}
