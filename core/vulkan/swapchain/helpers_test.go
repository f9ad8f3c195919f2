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

package swapchain_test

import (
	"context"
	"sync"

	"github.com/holm-xie/gapid/core/log"
	"github.com/holm-xie/gapid/core/vulkan/swapchain"
)

// recorder is a log handler that keeps every message.
type recorder struct {
	mutex    sync.Mutex
	messages []*log.Message
}

func (r *recorder) Handle(m *log.Message) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.messages = append(r.messages, m)
}

func (r *recorder) Close() {}

func (r *recorder) at(s log.Severity) []*log.Message {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := []*log.Message{}
	for _, m := range r.messages {
		if m.Severity == s {
			out = append(out, m)
		}
	}
	return out
}

// handles returns a set of distinct fake handles for one object tree. The
// handles are never dereferenced.
type handles struct {
	instance       swapchain.Instance
	physicalDevice swapchain.PhysicalDevice
	device         swapchain.Device
	queue          swapchain.Queue
	commandBuffer  swapchain.CommandBuffer
}

func fakeHandles(id int) handles {
	base := uintptr(id+1) << 8
	return handles{
		instance:       swapchain.Instance(base | 1),
		physicalDevice: swapchain.PhysicalDevice(base | 2),
		device:         swapchain.Device(base | 3),
		queue:          swapchain.Queue(base | 4),
		commandBuffer:  swapchain.CommandBuffer(base | 5),
	}
}

// track registers the whole tree of h with c.
func (h handles) track(ctx context.Context, c *swapchain.Context, funcs swapchain.DeviceFuncs) error {
	if err := c.TrackInstance(ctx, h.instance, swapchain.InstanceFuncs{}); err != nil {
		return err
	}
	if err := c.TrackPhysicalDevices(ctx, h.instance, []swapchain.PhysicalDevice{h.physicalDevice}); err != nil {
		return err
	}
	if err := c.TrackDevice(ctx, h.physicalDevice, h.device, funcs); err != nil {
		return err
	}
	if err := c.TrackQueue(ctx, h.device, h.queue); err != nil {
		return err
	}
	return c.TrackCommandBuffers(ctx, h.device, []swapchain.CommandBuffer{h.commandBuffer})
}
