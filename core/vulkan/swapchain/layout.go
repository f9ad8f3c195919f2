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

// The structures below match the C layout of their Vulkan counterparts on
// 64-bit ABIs, so they can be filled in directly by the driver.

const (
	maxMemoryTypes            = 32
	maxMemoryHeaps            = 16
	maxPhysicalDeviceNameSize = 256
	uuidSize                  = 16

	// VkPhysicalDeviceLimits is 504 bytes of 8-byte aligned fields.
	physicalDeviceLimitsWords = 63

	structureTypeCommandBufferAllocateInfo = 40
)

// Memory property flags.
const (
	MemoryPropertyDeviceLocal  = 0x1
	MemoryPropertyHostVisible  = 0x2
	MemoryPropertyHostCoherent = 0x4
	MemoryPropertyHostCached   = 0x8
)

// MemoryType is a VkMemoryType.
type MemoryType struct {
	PropertyFlags uint32
	HeapIndex     uint32
}

// MemoryHeap is a VkMemoryHeap.
type MemoryHeap struct {
	Size  uint64
	Flags uint32
}

// PhysicalDeviceMemoryProperties is a VkPhysicalDeviceMemoryProperties.
type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [maxMemoryTypes]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [maxMemoryHeaps]MemoryHeap
}

// FindMemoryType returns the index of the first memory type allowed by
// typeBits that has all of the property flags in required.
func (p *PhysicalDeviceMemoryProperties) FindMemoryType(typeBits, required uint32) (uint32, bool) {
	for i := uint32(0); i < p.MemoryTypeCount && i < maxMemoryTypes; i++ {
		if typeBits&(1<<i) != 0 && p.MemoryTypes[i].PropertyFlags&required == required {
			return i, true
		}
	}
	return 0, false
}

// PhysicalDeviceSparseProperties is a VkPhysicalDeviceSparseProperties.
type PhysicalDeviceSparseProperties struct {
	ResidencyStandard2DBlockShape            uint32
	ResidencyStandard2DMultisampleBlockShape uint32
	ResidencyStandard3DBlockShape            uint32
	ResidencyAlignedMipSize                  uint32
	ResidencyNonResidentStrict               uint32
}

// PhysicalDeviceProperties is a VkPhysicalDeviceProperties.
// The limits are kept as opaque storage; the layer does not read them.
type PhysicalDeviceProperties struct {
	APIVersion        uint32
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	DeviceType        uint32
	DeviceName        [maxPhysicalDeviceNameSize]byte
	PipelineCacheUUID [uuidSize]byte
	Limits            [physicalDeviceLimitsWords]uint64
	SparseProperties  PhysicalDeviceSparseProperties
}

// Name returns the device name as a Go string.
func (p *PhysicalDeviceProperties) Name() string {
	for i, c := range p.DeviceName {
		if c == 0 {
			return string(p.DeviceName[:i])
		}
	}
	return string(p.DeviceName[:])
}

// MemoryRequirements is a VkMemoryRequirements.
type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

// CommandBufferAllocateInfo is a VkCommandBufferAllocateInfo.
type CommandBufferAllocateInfo struct {
	SType              uint32
	Next               unsafe.Pointer
	CommandPool        CommandPool
	Level              uint32
	CommandBufferCount uint32
}

// NewCommandBufferAllocateInfo returns the allocate info for count primary
// command buffers from pool.
func NewCommandBufferAllocateInfo(pool CommandPool, count uint32) CommandBufferAllocateInfo {
	return CommandBufferAllocateInfo{
		SType:              structureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		CommandBufferCount: count,
	}
}
