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

import "github.com/pkg/errors"

var (
	// ErrNotFound is the cause of errors returned when a handle has no record
	// in the registry it was looked up in. The handle was never tracked or
	// has already been destroyed.
	ErrNotFound = errors.New("handle not tracked")

	// ErrAlreadyTracked is the cause of errors returned when inserting a
	// handle that already has a record.
	ErrAlreadyTracked = errors.New("handle already tracked")

	// ErrNullHandle is the cause of errors returned when inserting
	// VK_NULL_HANDLE.
	ErrNullHandle = errors.New("null handle")

	// ErrLockOrderViolation is the cause of the panic raised when registry
	// locks are acquired out of order.
	ErrLockOrderViolation = errors.New("registry lock order violated")

	// ErrMissingProc is the cause of errors returned when the next layer does
	// not provide an entry point the layer needs.
	ErrMissingProc = errors.New("entry point not found")

	// ErrTokenReleased is the panic value when a released or moved token is
	// dereferenced.
	ErrTokenReleased = errors.New("token used after release")
)

// IsNotFound returns true if the cause of err is ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && errors.Cause(err) == ErrNotFound
}
