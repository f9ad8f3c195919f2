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

// Function types shared between the device table and the queue and command
// buffer records.
type (
	QueueSubmitFunc func(queue Queue, submitCount uint32, submits unsafe.Pointer, fence Fence) Result

	CmdPipelineBarrierFunc func(commandBuffer CommandBuffer,
		srcStageMask, dstStageMask, dependencyFlags uint32,
		memoryBarrierCount uint32, memoryBarriers unsafe.Pointer,
		bufferMemoryBarrierCount uint32, bufferMemoryBarriers unsafe.Pointer,
		imageMemoryBarrierCount uint32, imageMemoryBarriers unsafe.Pointer)

	CmdWaitEventsFunc func(commandBuffer CommandBuffer,
		eventCount uint32, events unsafe.Pointer,
		srcStageMask, dstStageMask uint32,
		memoryBarrierCount uint32, memoryBarriers unsafe.Pointer,
		bufferMemoryBarrierCount uint32, bufferMemoryBarriers unsafe.Pointer,
		imageMemoryBarrierCount uint32, imageMemoryBarriers unsafe.Pointer)
)

// InstanceFuncs are the instance level functions of the next layer that the
// layer calls. The vk tag names the entry point each field is resolved from.
type InstanceFuncs struct {
	GetInstanceProcAddr      func(instance Instance, name string) PFN                                       `vk:"vkGetInstanceProcAddr"`
	DestroyInstance          func(instance Instance, allocator unsafe.Pointer)                              `vk:"vkDestroyInstance"`
	EnumeratePhysicalDevices func(instance Instance, count *uint32, physicalDevices *PhysicalDevice) Result `vk:"vkEnumeratePhysicalDevices"`

	EnumerateDeviceExtensionProperties func(physicalDevice PhysicalDevice, layerName *byte, count *uint32, properties unsafe.Pointer) Result `vk:"vkEnumerateDeviceExtensionProperties"`

	CreateDevice func(physicalDevice PhysicalDevice, createInfo, allocator unsafe.Pointer, device *Device) Result `vk:"vkCreateDevice"`

	GetPhysicalDeviceQueueFamilyProperties func(physicalDevice PhysicalDevice, count *uint32, properties unsafe.Pointer)   `vk:"vkGetPhysicalDeviceQueueFamilyProperties"`
	GetPhysicalDeviceProperties            func(physicalDevice PhysicalDevice, properties *PhysicalDeviceProperties)       `vk:"vkGetPhysicalDeviceProperties"`
	GetPhysicalDeviceMemoryProperties      func(physicalDevice PhysicalDevice, properties *PhysicalDeviceMemoryProperties) `vk:"vkGetPhysicalDeviceMemoryProperties"`
}

// DeviceFuncs are the device level functions of the next layer that the
// layer calls.
type DeviceFuncs struct {
	GetDeviceProcAddr func(device Device, name string) PFN                                   `vk:"vkGetDeviceProcAddr"`
	GetDeviceQueue    func(device Device, queueFamilyIndex, queueIndex uint32, queue *Queue) `vk:"vkGetDeviceQueue"`

	AllocateMemory               func(device Device, allocateInfo, allocator unsafe.Pointer, memory *DeviceMemory) Result                 `vk:"vkAllocateMemory"`
	FreeMemory                   func(device Device, memory DeviceMemory, allocator unsafe.Pointer)                                       `vk:"vkFreeMemory"`
	MapMemory                    func(device Device, memory DeviceMemory, offset, size uint64, flags uint32, data *unsafe.Pointer) Result `vk:"vkMapMemory"`
	UnmapMemory                  func(device Device, memory DeviceMemory)                                                                 `vk:"vkUnmapMemory"`
	InvalidateMappedMemoryRanges func(device Device, rangeCount uint32, ranges unsafe.Pointer) Result                                     `vk:"vkInvalidateMappedMemoryRanges"`

	CreateFence    func(device Device, createInfo, allocator unsafe.Pointer, fence *Fence) Result               `vk:"vkCreateFence"`
	GetFenceStatus func(device Device, fence Fence) Result                                                      `vk:"vkGetFenceStatus"`
	WaitForFences  func(device Device, fenceCount uint32, fences *Fence, waitAll uint32, timeout uint64) Result `vk:"vkWaitForFences"`
	DestroyFence   func(device Device, fence Fence, allocator unsafe.Pointer)                                   `vk:"vkDestroyFence"`
	ResetFences    func(device Device, fenceCount uint32, fences *Fence) Result                                 `vk:"vkResetFences"`

	CreateImage                 func(device Device, createInfo, allocator unsafe.Pointer, image *Image) Result   `vk:"vkCreateImage"`
	GetImageMemoryRequirements  func(device Device, image Image, requirements *MemoryRequirements)               `vk:"vkGetImageMemoryRequirements"`
	BindImageMemory             func(device Device, image Image, memory DeviceMemory, offset uint64) Result      `vk:"vkBindImageMemory"`
	DestroyImage                func(device Device, image Image, allocator unsafe.Pointer)                       `vk:"vkDestroyImage"`
	CreateBuffer                func(device Device, createInfo, allocator unsafe.Pointer, buffer *Buffer) Result `vk:"vkCreateBuffer"`
	GetBufferMemoryRequirements func(device Device, buffer Buffer, requirements *MemoryRequirements)             `vk:"vkGetBufferMemoryRequirements"`
	BindBufferMemory            func(device Device, buffer Buffer, memory DeviceMemory, offset uint64) Result    `vk:"vkBindBufferMemory"`
	DestroyBuffer               func(device Device, buffer Buffer, allocator unsafe.Pointer)                     `vk:"vkDestroyBuffer"`

	CreateCommandPool      func(device Device, createInfo, allocator unsafe.Pointer, pool *CommandPool) Result                `vk:"vkCreateCommandPool"`
	DestroyCommandPool     func(device Device, pool CommandPool, allocator unsafe.Pointer)                                    `vk:"vkDestroyCommandPool"`
	AllocateCommandBuffers func(device Device, allocateInfo *CommandBufferAllocateInfo, commandBuffers *CommandBuffer) Result `vk:"vkAllocateCommandBuffers"`
	FreeCommandBuffers     func(device Device, pool CommandPool, count uint32, commandBuffers *CommandBuffer)                 `vk:"vkFreeCommandBuffers"`

	BeginCommandBuffer func(commandBuffer CommandBuffer, beginInfo unsafe.Pointer) Result `vk:"vkBeginCommandBuffer"`
	EndCommandBuffer   func(commandBuffer CommandBuffer) Result                           `vk:"vkEndCommandBuffer"`

	CmdCopyImageToBuffer func(commandBuffer CommandBuffer, image Image, imageLayout uint32, buffer Buffer, regionCount uint32, regions unsafe.Pointer) `vk:"vkCmdCopyImageToBuffer"`
	CmdPipelineBarrier   CmdPipelineBarrierFunc                                                                                                        `vk:"vkCmdPipelineBarrier"`
	CmdWaitEvents        CmdWaitEventsFunc                                                                                                             `vk:"vkCmdWaitEvents"`
	CreateRenderPass     func(device Device, createInfo, allocator unsafe.Pointer, renderPass *RenderPass) Result                                      `vk:"vkCreateRenderPass"`

	QueueSubmit   QueueSubmitFunc                               `vk:"vkQueueSubmit"`
	DestroyDevice func(device Device, allocator unsafe.Pointer) `vk:"vkDestroyDevice"`
}

// InstanceData is the record kept for each VkInstance.
type InstanceData struct {
	Funcs InstanceFuncs

	// All of the physical devices enumerated from this instance.
	PhysicalDevices []PhysicalDevice
}

// PhysicalDeviceData is the record kept for each VkPhysicalDevice.
// The properties are queried when the physical device is first enumerated
// and never change afterwards.
type PhysicalDeviceData struct {
	// The instance that this physical device belongs to.
	Instance Instance

	MemoryProperties PhysicalDeviceMemoryProperties
	Properties       PhysicalDeviceProperties
}

// DeviceData is the record kept for each VkDevice.
type DeviceData struct {
	PhysicalDevice PhysicalDevice
	Funcs          DeviceFuncs
}

// QueueData is the record kept for each VkQueue.
type QueueData struct {
	Device      Device
	QueueSubmit QueueSubmitFunc
}

// CommandBufferData is the record kept for each VkCommandBuffer.
type CommandBufferData struct {
	Device             Device
	CmdPipelineBarrier CmdPipelineBarrierFunc
	CmdWaitEvents      CmdWaitEventsFunc
}
