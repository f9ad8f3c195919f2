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

import "fmt"

// Handle is satisfied by every handle kind a Registry can be keyed by.
type Handle interface {
	~uintptr
}

// Dispatchable handles. Each is the address of a driver object whose first
// machine word holds the loader's dispatch table pointer.
type (
	Instance       uintptr
	PhysicalDevice uintptr
	Device         uintptr
	Queue          uintptr
	CommandBuffer  uintptr
)

// Non-dispatchable handles are 64-bit values on every ABI.
type (
	DeviceMemory uint64
	Fence        uint64
	Image        uint64
	Buffer       uint64
	CommandPool  uint64
	RenderPass   uint64
)

// PFN is the address of a Vulkan entry point in the next layer or driver.
type PFN uintptr

func (h Instance) String() string       { return fmt.Sprintf("VkInstance(%#x)", uintptr(h)) }
func (h PhysicalDevice) String() string { return fmt.Sprintf("VkPhysicalDevice(%#x)", uintptr(h)) }
func (h Device) String() string         { return fmt.Sprintf("VkDevice(%#x)", uintptr(h)) }
func (h Queue) String() string          { return fmt.Sprintf("VkQueue(%#x)", uintptr(h)) }
func (h CommandBuffer) String() string  { return fmt.Sprintf("VkCommandBuffer(%#x)", uintptr(h)) }

// Result is a VkResult.
// Non-success results are errors, so a failing driver call can be wrapped and
// later recovered with errors.Cause.
type Result int32

// The results the layer inspects.
const (
	Success                   Result = 0
	NotReady                  Result = 1
	Timeout                   Result = 2
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
)

func (r Result) Error() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case NotReady:
		return "VK_NOT_READY"
	case Timeout:
		return "VK_TIMEOUT"
	case ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorInitializationFailed:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	default:
		return fmt.Sprintf("VkResult(%d)", int32(r))
	}
}
