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

//go:build unix

package swapchain_test

import (
	"sync"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"
)

// objectSize is the size of each fake dispatchable object. Only the first
// word has a meaning, the rest is there to catch writes past it.
const objectSize = 64

// arena hands out fake dispatchable objects in memory mapped outside the Go
// heap, the way driver objects are.
type arena struct {
	mutex  sync.Mutex
	memory []byte
	used   int
}

func newArena(t *testing.T, objects int) *arena {
	memory, err := unix.Mmap(-1, 0, objects*objectSize,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		t.Fatalf("mmap: %v", err)
	}
	t.Cleanup(func() { unix.Munmap(memory) })
	return &arena{memory: memory}
}

// new returns the address of a fresh object whose dispatch word is key and
// whose remaining bytes are all 0xcd.
func (a *arena) new(key uintptr) uintptr {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.used+objectSize > len(a.memory) {
		panic("arena exhausted")
	}
	object := a.memory[a.used : a.used+objectSize]
	a.used += objectSize
	for i := range object {
		object[i] = 0xcd
	}
	p := unsafe.Pointer(&object[0])
	*(*uintptr)(p) = key
	return uintptr(p)
}

// bytes returns the raw contents of the object at addr.
func (a *arena) bytes(addr uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), objectSize)
}
