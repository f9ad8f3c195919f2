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

// Package swapchain holds the object bookkeeping of the virtual swapchain
// layer.
//
// The layer keeps a record for every instance, physical device, device, queue
// and command buffer it sees, holding the next layer's function pointers and
// the relationships between the objects. Records live in five registries, one
// per object category, each with its own lock. All of them are reached
// through the process wide Context returned by GetGlobalContext.
//
// When more than one registry is needed at once, locks are taken in the order
// documented on Level. Contexts from Context.Enter check that order and
// panic on violation, except in builds tagged release.
//
// Destroy intercepts erase the record before forwarding the call. The
// record, including the function to forward to, is returned by the Forget
// methods, so nothing is left for a concurrent caller to find while the driver
// tears the object down.
package swapchain

import (
	"context"
	"os"
	"sync"

	"github.com/holm-xie/gapid/core/log"
)

// Tag is the log tag of messages written by the layer.
const Tag = "VirtualSwapchain"

// Context is the composite of the five registries of the layer.
type Context struct {
	config Config
	base   context.Context

	commandBuffers  *Registry[CommandBuffer, CommandBufferData]
	queues          *Registry[Queue, QueueData]
	devices         *Registry[Device, DeviceData]
	physicalDevices *Registry[PhysicalDevice, PhysicalDeviceData]
	instances       *Registry[Instance, InstanceData]
}

var (
	globalContext *Context
	globalOnce    sync.Once
)

// GetGlobalContext returns the process wide Context, creating it on first use.
// The configuration is read from the environment at that point and log
// messages go to stderr. It is the only way intercepted entry points reach the
// registries. The Context is never torn down before the process exits.
func GetGlobalContext() *Context {
	globalOnce.Do(func() {
		stderr := log.Stderr(true)
		ctx := log.PutTag(log.PutHandler(context.Background(), stderr), Tag)
		globalContext = NewContext(ConfigFromEnv(ctx, os.LookupEnv), stderr)
	})
	return globalContext
}

// NewContext returns a Context with empty registries that logs to handler.
// A nil handler discards log messages. Only tests need a Context other than
// the global one.
func NewContext(cfg Config, handler log.Handler) *Context {
	base := context.Background()
	if handler != nil {
		base = log.PutHandler(base, handler)
	}
	base = log.PutFilter(base, log.SeverityFilter(cfg.LogLevel))
	base = log.PutTag(base, Tag)
	return &Context{
		config:          cfg,
		base:            base,
		commandBuffers:  NewRegistry[CommandBuffer, CommandBufferData]("VkCommandBuffer", CommandBufferLevel),
		queues:          NewRegistry[Queue, QueueData]("VkQueue", QueueLevel),
		devices:         NewRegistry[Device, DeviceData]("VkDevice", DeviceLevel),
		physicalDevices: NewRegistry[PhysicalDevice, PhysicalDeviceData]("VkPhysicalDevice", PhysicalDeviceLevel),
		instances:       NewRegistry[Instance, InstanceData]("VkInstance", InstanceLevel),
	}
}

// Enter returns the context an intercepted entry point uses for the duration
// of one call. It carries the layer's logging and, when enabled, a fresh
// lock order tracker.
func (c *Context) Enter() context.Context {
	if c.config.CheckLockOrder {
		return TrackLocks(c.base)
	}
	return c.base
}

// Config returns the configuration of the context.
func (c *Context) Config() Config { return c.config }

// CommandBuffers returns the VkCommandBuffer registry.
func (c *Context) CommandBuffers() *Registry[CommandBuffer, CommandBufferData] {
	return c.commandBuffers
}

// Queues returns the VkQueue registry.
func (c *Context) Queues() *Registry[Queue, QueueData] { return c.queues }

// Devices returns the VkDevice registry.
func (c *Context) Devices() *Registry[Device, DeviceData] { return c.devices }

// PhysicalDevices returns the VkPhysicalDevice registry.
func (c *Context) PhysicalDevices() *Registry[PhysicalDevice, PhysicalDeviceData] {
	return c.physicalDevices
}

// Instances returns the VkInstance registry.
func (c *Context) Instances() *Registry[Instance, InstanceData] { return c.instances }

// Unexpected reports a bookkeeping failure at an intercepted entry point and
// returns true if the caller should forward the call without any of the
// layer's own logic. In strict mode the failure is fatal instead.
func (c *Context) Unexpected(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if c.config.Strict {
		log.F(ctx, true, "Bookkeeping failure: %v", err)
		panic(err)
	}
	log.E(ctx, "Bookkeeping failure, forwarding call unmodified: %v", err)
	return true
}
