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

//go:build (darwin || linux) && (amd64 || arm64)

package swapchain_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/ebitengine/purego"
	"github.com/holm-xie/gapid/core/assert"
	"github.com/holm-xie/gapid/core/log"
	"github.com/holm-xie/gapid/core/vulkan/swapchain"
	"golang.org/x/sys/unix"
)

var (
	callbacksOnce sync.Once
	stubProc      uintptr
	propsProc     uintptr
)

// callbacks returns C callable function pointers that stand in for the next
// layer's entry points. Callbacks are a limited resource, so they are made
// once per test binary.
func callbacks() (stub, props uintptr) {
	callbacksOnce.Do(func() {
		stubProc = purego.NewCallback(func() uintptr { return 0 })
		propsProc = purego.NewCallback(func(physicalDevice uintptr, properties *swapchain.PhysicalDeviceProperties) uintptr {
			properties.DeviceID = uint32(physicalDevice)
			copy(properties.DeviceName[:], "Callback GPU\x00")
			return 0
		})
	})
	return stubProc, propsProc
}

func TestBindMissingProcs(t *testing.T) {
	ctx := log.Testing(t)
	stub, _ := callbacks()
	resolve := func(handle uintptr, name string) swapchain.PFN {
		if strings.Contains(name, "Fence") {
			return 0
		}
		return swapchain.PFN(stub)
	}
	funcs, err := swapchain.BindDeviceFuncs(resolve, swapchain.Device(0x10))
	assert.For(ctx, "err").ThatError(err).HasCause(swapchain.ErrMissingProc)
	for _, name := range []string{"vkCreateFence", "vkGetFenceStatus", "vkWaitForFences", "vkDestroyFence", "vkResetFences"} {
		assert.For(ctx, "mentions %s", name).ThatBoolean(strings.Contains(err.Error(), name)).IsTrue()
	}
	assert.For(ctx, "mentions device").ThatBoolean(strings.Contains(err.Error(), "VkDevice(0x10)")).IsTrue()
	assert.For(ctx, "no partial table").That(funcs.QueueSubmit).IsNil()
}

func TestBindDeviceFuncs(t *testing.T) {
	ctx := log.Testing(t)
	stub, _ := callbacks()
	names := []string{}
	resolve := func(handle uintptr, name string) swapchain.PFN {
		assert.For(ctx, "handle").That(handle).Equals(uintptr(0x20))
		names = append(names, name)
		return swapchain.PFN(stub)
	}
	funcs, err := swapchain.BindDeviceFuncs(resolve, swapchain.Device(0x20))
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "allocate").That(funcs.AllocateCommandBuffers).IsNotNil()
	assert.For(ctx, "barrier").That(funcs.CmdPipelineBarrier).IsNotNil()
	assert.For(ctx, "wait events").That(funcs.CmdWaitEvents).IsNotNil()
	assert.For(ctx, "submit").That(funcs.QueueSubmit).IsNotNil()
	assert.For(ctx, "destroy").That(funcs.DestroyDevice).IsNotNil()
	assert.For(ctx, "first").That(names[0]).Equals("vkGetDeviceProcAddr")
	assert.For(ctx, "last").That(names[len(names)-1]).Equals("vkDestroyDevice")
}

func TestProcResolverThroughNextLayer(t *testing.T) {
	ctx := log.Testing(t)
	stub, props := callbacks()

	mutex := sync.Mutex{}
	requested := []string{}
	next := purego.NewCallback(func(handle uintptr, name *byte) uintptr {
		n := unix.BytePtrToString(name)
		mutex.Lock()
		requested = append(requested, n)
		mutex.Unlock()
		if n == "vkGetPhysicalDeviceProperties" {
			return props
		}
		return stub
	})

	resolve := swapchain.NewProcResolver(swapchain.PFN(next))
	funcs, err := swapchain.BindInstanceFuncs(resolve, swapchain.Instance(0x30))
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "requests").ThatInteger(len(requested)).Equals(8)
	assert.For(ctx, "first request").That(requested[0]).Equals("vkGetInstanceProcAddr")

	properties := swapchain.PhysicalDeviceProperties{}
	funcs.GetPhysicalDeviceProperties(swapchain.PhysicalDevice(0x31), &properties)
	assert.For(ctx, "device id").That(properties.DeviceID).Equals(uint32(0x31))
	assert.For(ctx, "device name").That(properties.Name()).Equals("Callback GPU")
}

func TestNewProcResolverNull(t *testing.T) {
	ctx := log.Testing(t)
	defer func() {
		assert.For(ctx, "panic").That(recover()).IsNotNil()
	}()
	swapchain.NewProcResolver(0)
}
