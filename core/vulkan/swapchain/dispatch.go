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

import "unsafe"

// SetDispatchFromParent sets the key of the dispatch table used by lower
// layers for the child dispatchable handle to the key of its parent.
//
// Every dispatchable object begins with one machine word reserved by the
// loader ABI for a pointer identifying its dispatch table. Lower layers find
// their per-object state by that pointer. Child handles created by a layer
// itself, rather than through the loader, never get that word filled in. A
// VkCommandBuffer allocated by the layer is one example: its functions are all
// device functions, so it has to share the device's key.
//
// It must be called exactly once for each such child, after the driver call
// that created it succeeded and before the handle is tracked or returned.
// Later changes to the parent's word are not reflected in the child.
//
// Both handles must be valid dispatchable objects. This is the only place
// the package reads or writes driver memory.
func SetDispatchFromParent[C, P Handle](child C, parent P) {
	if child == 0 || parent == 0 {
		panic("swapchain: SetDispatchFromParent called with a null handle")
	}
	*(*uintptr)(unsafe.Pointer(uintptr(child))) = *(*uintptr)(unsafe.Pointer(uintptr(parent)))
}

// DispatchKey returns the dispatch table key stored in the first word of the
// dispatchable object h.
func DispatchKey[H Handle](h H) uintptr {
	if h == 0 {
		panic("swapchain: DispatchKey called with a null handle")
	}
	return *(*uintptr)(unsafe.Pointer(uintptr(h)))
}
