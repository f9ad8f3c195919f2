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

import (
	"context"

	"github.com/holm-xie/gapid/core/log"
	"github.com/pkg/errors"
)

// TrackInstance records a newly created instance. It is called by the
// vkCreateInstance intercept once the next layer returned the instance.
func (c *Context) TrackInstance(ctx context.Context, instance Instance, funcs InstanceFuncs) error {
	if err := c.instances.Insert(ctx, instance, InstanceData{Funcs: funcs}); err != nil {
		return err
	}
	log.D(ctx, "Tracking %v", instance)
	return nil
}

// TrackPhysicalDevices records the physical devices returned by
// vkEnumeratePhysicalDevices for instance. Devices already known to instance
// are skipped, so the enumeration can be repeated. The properties of each new
// physical device are queried and cached. A known handle whose instance was
// destroyed is taken over by instance, as the driver may hand it out again.
func (c *Context) TrackPhysicalDevices(ctx context.Context, instance Instance, physicalDevices []PhysicalDevice) error {
	all := c.physicalDevices.All(ctx)
	defer all.Release()

	instances := c.instances.All(ctx)
	defer instances.Release()

	data, ok := (*instances.Get())[instance]
	if !ok {
		return errors.Wrapf(ErrNotFound, "enumerating physical devices of %v", instance)
	}
	records := *all.Get()
	for _, pd := range physicalDevices {
		if pd == 0 {
			continue
		}
		if existing, ok := records[pd]; ok {
			if existing.Instance == instance {
				continue
			}
			if _, alive := (*instances.Get())[existing.Instance]; alive {
				continue
			}
			log.D(ctx, "Replacing record of %v left by destroyed %v", pd, existing.Instance)
		}
		record := &PhysicalDeviceData{Instance: instance}
		if f := data.Funcs.GetPhysicalDeviceProperties; f != nil {
			f(pd, &record.Properties)
		}
		if f := data.Funcs.GetPhysicalDeviceMemoryProperties; f != nil {
			f(pd, &record.MemoryProperties)
		}
		records[pd] = record
		data.PhysicalDevices = append(data.PhysicalDevices, pd)
		log.Bind(ctx, log.V{"instance": instance}).D("Tracking %v %q", pd, record.Properties.Name())
	}
	return nil
}

// TrackDevice records a device created from physicalDevice. It is called by
// the vkCreateDevice intercept once the next layer returned the device.
// The physical device is checked and the device inserted under separate
// locks, so the physical device may be gone by the time the record exists.
func (c *Context) TrackDevice(ctx context.Context, physicalDevice PhysicalDevice, device Device, funcs DeviceFuncs) error {
	if !c.physicalDevices.Contains(ctx, physicalDevice) {
		return errors.Wrapf(ErrNotFound, "creating %v from %v", device, physicalDevice)
	}
	if err := c.devices.Insert(ctx, device, DeviceData{PhysicalDevice: physicalDevice, Funcs: funcs}); err != nil {
		return err
	}
	log.D(ctx, "Tracking %v", device)
	return nil
}

// TrackQueue records a queue returned by vkGetDeviceQueue. The queue inherits
// the device's vkQueueSubmit. Getting the same queue again is not an error.
// A queue record left behind by a destroyed device is replaced, as queues have
// no destroy call of their own and the driver may reuse the handle.
func (c *Context) TrackQueue(ctx context.Context, device Device, queue Queue) error {
	if queue == 0 {
		return errors.Wrapf(ErrNullHandle, "queue of %v", device)
	}
	all := c.queues.All(ctx)
	defer all.Release()

	devices := c.devices.All(ctx)
	defer devices.Release()

	dev, ok := (*devices.Get())[device]
	if !ok {
		return errors.Wrapf(ErrNotFound, "getting %v of %v", queue, device)
	}
	records := *all.Get()
	if existing, ok := records[queue]; ok {
		if existing.Device == device {
			return nil
		}
		if _, alive := (*devices.Get())[existing.Device]; alive {
			return errors.Wrapf(ErrAlreadyTracked, "%v belongs to %v, not %v", queue, existing.Device, device)
		}
		log.D(ctx, "Replacing record of %v left by destroyed %v", queue, existing.Device)
	}
	records[queue] = &QueueData{Device: device, QueueSubmit: dev.Funcs.QueueSubmit}
	return nil
}

// TrackCommandBuffers records command buffers allocated from device.
// A handle that is already tracked is replaced: freeing its command pool
// releases a command buffer without a vkFreeCommandBuffers call, so the driver
// may hand out the same handle again.
func (c *Context) TrackCommandBuffers(ctx context.Context, device Device, commandBuffers []CommandBuffer) error {
	all := c.commandBuffers.All(ctx)
	defer all.Release()

	dev, err := c.devices.Lookup(ctx, device)
	if err != nil {
		return err
	}
	defer dev.Release()

	records := *all.Get()
	funcs := &dev.Get().Funcs
	for _, cb := range commandBuffers {
		if cb == 0 {
			continue
		}
		if _, ok := records[cb]; ok {
			log.D(ctx, "Replacing record of reused %v", cb)
		}
		records[cb] = &CommandBufferData{
			Device:             device,
			CmdPipelineBarrier: funcs.CmdPipelineBarrier,
			CmdWaitEvents:      funcs.CmdWaitEvents,
		}
	}
	return nil
}

// AllocateCommandBuffers allocates command buffers for the layer's own use
// from device. The loader never sees these command buffers, so each one gets
// the device's dispatch key before it is tracked.
func (c *Context) AllocateCommandBuffers(ctx context.Context, device Device, info *CommandBufferAllocateInfo) ([]CommandBuffer, error) {
	if info.CommandBufferCount == 0 {
		return nil, nil
	}
	dev, err := c.devices.Lookup(ctx, device)
	if err != nil {
		return nil, err
	}
	allocate := dev.Get().Funcs.AllocateCommandBuffers
	free := dev.Get().Funcs.FreeCommandBuffers
	dev.Release()
	if allocate == nil {
		return nil, errors.Wrapf(ErrMissingProc, "vkAllocateCommandBuffers of %v", device)
	}

	out := make([]CommandBuffer, info.CommandBufferCount)
	if res := allocate(device, info, &out[0]); res != Success {
		return nil, errors.Wrapf(res, "vkAllocateCommandBuffers on %v", device)
	}
	for _, cb := range out {
		SetDispatchFromParent(cb, device)
	}
	if err := c.TrackCommandBuffers(ctx, device, out); err != nil {
		if free != nil {
			free(device, info.CommandPool, info.CommandBufferCount, &out[0])
		}
		return nil, err
	}
	return out, nil
}

// ForgetCommandBuffers erases the records of freed command buffers.
// Null handles are ignored. The first missing record is reported after all
// other buffers were erased.
func (c *Context) ForgetCommandBuffers(ctx context.Context, commandBuffers []CommandBuffer) error {
	var first error
	for _, cb := range commandBuffers {
		if cb == 0 {
			continue
		}
		if err := c.commandBuffers.Erase(ctx, cb); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ForgetDevice erases the record of device and returns it, so the caller can
// forward vkDestroyDevice through the record's functions. Records of the
// device's queues and command buffers are left in place; resolving their
// device fails with ErrNotFound from now on.
func (c *Context) ForgetDevice(ctx context.Context, device Device) (DeviceData, error) {
	data, err := c.devices.Take(ctx, device)
	if err != nil {
		return DeviceData{}, err
	}
	log.D(ctx, "Forgot %v", device)
	return data, nil
}

// ForgetInstance erases the record of instance and returns it, so the caller
// can forward vkDestroyInstance. The records of its physical devices are left
// in place.
func (c *Context) ForgetInstance(ctx context.Context, instance Instance) (InstanceData, error) {
	data, err := c.instances.Take(ctx, instance)
	if err != nil {
		return InstanceData{}, err
	}
	log.D(ctx, "Forgot %v", instance)
	return data, nil
}

// resolveParent looks up the child record, reads its back-reference and
// returns a token for the parent's record. The child lock is released before
// the parent is looked up, so the parent may have been erased in between; that
// is reported as ErrNotFound like any other missing record.
func resolveParent[CH, PH Handle, CR, PR any](ctx context.Context,
	children *Registry[CH, CR], child CH, parentOf func(*CR) PH,
	parents *Registry[PH, PR]) (*Token[PR], error) {

	tok, err := children.Lookup(ctx, child)
	if err != nil {
		return nil, err
	}
	parent := parentOf(tok.Get())
	tok.Release()
	return parents.Lookup(ctx, parent)
}

// QueueDevice returns a token for the record of the device that owns queue.
func (c *Context) QueueDevice(ctx context.Context, queue Queue) (*Token[DeviceData], error) {
	return resolveParent(ctx, c.queues, queue, func(q *QueueData) Device { return q.Device }, c.devices)
}

// CommandBufferDevice returns a token for the record of the device that owns
// commandBuffer.
func (c *Context) CommandBufferDevice(ctx context.Context, commandBuffer CommandBuffer) (*Token[DeviceData], error) {
	return resolveParent(ctx, c.commandBuffers, commandBuffer,
		func(cb *CommandBufferData) Device { return cb.Device }, c.devices)
}

// DevicePhysicalDevice returns a token for the record of the physical device
// that device was created from.
func (c *Context) DevicePhysicalDevice(ctx context.Context, device Device) (*Token[PhysicalDeviceData], error) {
	return resolveParent(ctx, c.devices, device,
		func(d *DeviceData) PhysicalDevice { return d.PhysicalDevice }, c.physicalDevices)
}

// PhysicalDeviceInstance returns a token for the record of the instance that
// physicalDevice was enumerated from.
func (c *Context) PhysicalDeviceInstance(ctx context.Context, physicalDevice PhysicalDevice) (*Token[InstanceData], error) {
	return resolveParent(ctx, c.physicalDevices, physicalDevice,
		func(pd *PhysicalDeviceData) Instance { return pd.Instance }, c.instances)
}
