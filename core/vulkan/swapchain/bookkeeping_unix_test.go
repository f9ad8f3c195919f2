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
	"testing"
	"unsafe"

	"github.com/holm-xie/gapid/core/assert"
	"github.com/holm-xie/gapid/core/log"
	"github.com/holm-xie/gapid/core/vulkan/swapchain"
)

const (
	instanceKey = uintptr(0x1111)
	deviceKey   = uintptr(0xd00d)
)

// fakeDevice returns device functions whose AllocateCommandBuffers creates
// objects from objects that have no dispatch key yet.
func fakeDevice(objects *arena, result swapchain.Result) swapchain.DeviceFuncs {
	return swapchain.DeviceFuncs{
		AllocateCommandBuffers: func(d swapchain.Device, info *swapchain.CommandBufferAllocateInfo, out *swapchain.CommandBuffer) swapchain.Result {
			if result != swapchain.Success {
				return result
			}
			buffers := unsafe.Slice(out, info.CommandBufferCount)
			for i := range buffers {
				buffers[i] = swapchain.CommandBuffer(objects.new(0))
			}
			return swapchain.Success
		},
		QueueSubmit:   fakeQueueSubmit,
		DestroyDevice: func(swapchain.Device, unsafe.Pointer) {},
	}
}

func TestObjectLifetime(t *testing.T) {
	ctx := log.Testing(t)
	c := swapchain.NewContext(swapchain.DefaultConfig(), nil)
	ctx = swapchain.TrackLocks(ctx)
	objects := newArena(t, 8)
	inst := &fakeInstance{}

	i1 := swapchain.Instance(objects.new(instanceKey))
	p1 := swapchain.PhysicalDevice(objects.new(instanceKey))
	assert.For(ctx, "create I1").ThatError(c.TrackInstance(ctx, i1, inst.funcs())).Succeeded()
	assert.For(ctx, "enumerate P1").ThatError(
		c.TrackPhysicalDevices(ctx, i1, []swapchain.PhysicalDevice{p1})).Succeeded()

	pd, err := c.PhysicalDeviceInstance(ctx, p1)
	assert.For(ctx, "P1 -> I1").ThatError(err).Succeeded()
	assert.For(ctx, "P1 properties").That(inst.propertyQueries).Equals(1)
	pd.Release()

	d1 := swapchain.Device(objects.new(deviceKey))
	assert.For(ctx, "create D1").ThatError(c.TrackDevice(ctx, p1, d1, fakeDevice(objects, swapchain.Success))).Succeeded()

	info := swapchain.NewCommandBufferAllocateInfo(0x42, 1)
	buffers, err := c.AllocateCommandBuffers(ctx, d1, &info)
	assert.For(ctx, "allocate C1").ThatError(err).Succeeded()
	assert.For(ctx, "allocated").ThatInteger(len(buffers)).Equals(1)
	c1 := buffers[0]
	assert.For(ctx, "C1 dispatch key").That(swapchain.DispatchKey(c1)).Equals(deviceKey)
	assert.For(ctx, "C1 tracked").ThatBoolean(c.CommandBuffers().Contains(ctx, c1)).IsTrue()

	dev, err := c.CommandBufferDevice(ctx, c1)
	assert.For(ctx, "C1 -> D1").ThatError(err).Succeeded()
	assert.For(ctx, "C1 device").That(dev.Get().PhysicalDevice).Equals(p1)
	dev.Release()

	data, err := c.ForgetDevice(ctx, d1)
	assert.For(ctx, "destroy D1").ThatError(err).Succeeded()
	data.Funcs.DestroyDevice(d1, nil)

	_, err = c.Devices().Lookup(ctx, d1)
	assert.For(ctx, "lookup D1").ThatError(err).HasCause(swapchain.ErrNotFound)

	cb, err := c.CommandBuffers().Lookup(ctx, c1)
	assert.For(ctx, "lookup C1").ThatError(err).Succeeded()
	assert.For(ctx, "C1 back-reference").That(cb.Get().Device).Equals(d1)
	cb.Release()

	_, err = c.CommandBufferDevice(ctx, c1)
	assert.For(ctx, "C1 -> D1 after destroy").ThatError(err).HasCause(swapchain.ErrNotFound)
	assert.For(ctx, "held").ThatInteger(len(swapchain.HeldLocks(ctx))).Equals(0)
}

func TestAllocateCommandBuffersFailure(t *testing.T) {
	ctx := log.Testing(t)
	c := swapchain.NewContext(swapchain.DefaultConfig(), nil)
	objects := newArena(t, 4)
	h := fakeHandles(0)
	h.device = swapchain.Device(objects.new(deviceKey))
	assert.For(ctx, "track").ThatError(h.track(ctx, c, fakeDevice(objects, swapchain.ErrorOutOfDeviceMemory))).Succeeded()

	info := swapchain.NewCommandBufferAllocateInfo(0x42, 2)
	buffers, err := c.AllocateCommandBuffers(ctx, h.device, &info)
	assert.For(ctx, "err").ThatError(err).HasCause(swapchain.ErrorOutOfDeviceMemory)
	assert.For(ctx, "buffers").That(buffers).IsNil()
	assert.For(ctx, "count").ThatInteger(c.CommandBuffers().Len(ctx)).Equals(1)

	info.CommandBufferCount = 0
	buffers, err = c.AllocateCommandBuffers(ctx, h.device, &info)
	assert.For(ctx, "empty").ThatError(err).Succeeded()
	assert.For(ctx, "empty buffers").That(buffers).IsNil()

	info.CommandBufferCount = 1
	_, err = c.AllocateCommandBuffers(ctx, fakeHandles(3).device, &info)
	assert.For(ctx, "unknown device").ThatError(err).HasCause(swapchain.ErrNotFound)
}

func TestAllocateCommandBuffersMissingProc(t *testing.T) {
	ctx := log.Testing(t)
	c := swapchain.NewContext(swapchain.DefaultConfig(), nil)
	h := fakeHandles(0)
	assert.For(ctx, "track").ThatError(h.track(ctx, c, swapchain.DeviceFuncs{})).Succeeded()

	info := swapchain.NewCommandBufferAllocateInfo(0x42, 1)
	_, err := c.AllocateCommandBuffers(ctx, h.device, &info)
	assert.For(ctx, "err").ThatError(err).HasCause(swapchain.ErrMissingProc)
}

func TestAllocateCommandBuffersFreesUntracked(t *testing.T) {
	ctx := log.Testing(t)
	c := swapchain.NewContext(swapchain.DefaultConfig(), nil)
	objects := newArena(t, 4)
	h := fakeHandles(0)
	h.device = swapchain.Device(objects.new(deviceKey))

	funcs := fakeDevice(objects, swapchain.Success)
	allocate := funcs.AllocateCommandBuffers
	funcs.AllocateCommandBuffers = func(d swapchain.Device, info *swapchain.CommandBufferAllocateInfo, out *swapchain.CommandBuffer) swapchain.Result {
		// The device is destroyed while the driver allocates.
		if _, err := c.ForgetDevice(ctx, d); err != nil {
			t.Errorf("Forgetting %v: %v", d, err)
		}
		return allocate(d, info, out)
	}
	freed := []swapchain.CommandBuffer{}
	freedPool := swapchain.CommandPool(0)
	funcs.FreeCommandBuffers = func(d swapchain.Device, pool swapchain.CommandPool, count uint32, buffers *swapchain.CommandBuffer) {
		freedPool = pool
		freed = append(freed, unsafe.Slice(buffers, count)...)
	}
	assert.For(ctx, "track").ThatError(h.track(ctx, c, funcs)).Succeeded()

	info := swapchain.NewCommandBufferAllocateInfo(0x42, 2)
	buffers, err := c.AllocateCommandBuffers(ctx, h.device, &info)
	assert.For(ctx, "err").ThatError(err).HasCause(swapchain.ErrNotFound)
	assert.For(ctx, "buffers").That(buffers).IsNil()
	assert.For(ctx, "freed").ThatInteger(len(freed)).Equals(2)
	assert.For(ctx, "pool").That(freedPool).Equals(swapchain.CommandPool(0x42))
	for _, cb := range freed {
		assert.For(ctx, "%v untracked", cb).ThatBoolean(c.CommandBuffers().Contains(ctx, cb)).IsFalse()
	}
}
