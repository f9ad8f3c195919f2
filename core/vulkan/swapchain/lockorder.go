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
	"fmt"
	"sync"

	"github.com/holm-xie/gapid/core/log"
	"github.com/pkg/errors"
)

// Level is the position of a registry in the lock order.
//
// In order to prevent dead-locks when more than one registry is needed, locks
// are always acquired from the most specific to the least specific:
//
//	CommandBuffer -> Queue -> Device -> PhysicalDevice -> Instance
//
// It is valid to acquire only a subset (Queue -> PhysicalDevice), but never to
// acquire a less specific registry before a more specific one.
type Level int

const (
	CommandBufferLevel Level = iota
	QueueLevel
	DeviceLevel
	PhysicalDeviceLevel
	InstanceLevel
)

func (l Level) String() string {
	switch l {
	case CommandBufferLevel:
		return "CommandBuffer"
	case QueueLevel:
		return "Queue"
	case DeviceLevel:
		return "Device"
	case PhysicalDeviceLevel:
		return "PhysicalDevice"
	case InstanceLevel:
		return "Instance"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// heldLocks is the stack of registry locks held by one call chain.
type heldLocks struct {
	mutex sync.Mutex
	held  []Level
}

type heldKeyTy string

const heldKey heldKeyTy = "swapchain.heldLocks"

// TrackLocks returns a context that validates the order of registry locks
// acquired through it. The returned context belongs to a single call chain and
// must not be shared between goroutines that acquire locks concurrently.
// In release builds TrackLocks returns ctx unchanged.
func TrackLocks(ctx context.Context) context.Context {
	if !lockOrderChecks {
		return ctx
	}
	return context.WithValue(ctx, heldKey, &heldLocks{})
}

// HeldLocks returns the registry levels currently held through ctx, in
// acquisition order. It returns nil if ctx does not track locks.
func HeldLocks(ctx context.Context) []Level {
	h := getHeld(ctx)
	if h == nil {
		return nil
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	out := make([]Level, len(h.held))
	copy(out, h.held)
	return out
}

func getHeld(ctx context.Context) *heldLocks {
	if !lockOrderChecks {
		return nil
	}
	out, _ := ctx.Value(heldKey).(*heldLocks)
	return out
}

// push records the acquisition of l. It must be called before blocking on the
// lock, so an out of order acquisition is reported instead of deadlocking.
func (h *heldLocks) push(ctx context.Context, l Level) {
	h.mutex.Lock()
	for _, held := range h.held {
		if held >= l {
			stack := append([]Level(nil), h.held...)
			h.mutex.Unlock()
			err := errors.Wrapf(ErrLockOrderViolation, "acquiring %v while holding %v", l, stack)
			log.F(ctx, true, "%v", err)
			panic(err)
		}
	}
	h.held = append(h.held, l)
	h.mutex.Unlock()
}

// pop removes the most recent acquisition of l. Tokens may be released in any
// order.
func (h *heldLocks) pop(l Level) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for i := len(h.held) - 1; i >= 0; i-- {
		if h.held[i] == l {
			h.held = append(h.held[:i], h.held[i+1:]...)
			return
		}
	}
}
