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
	"reflect"
	"strings"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

// ProcResolver returns the address of the next layer's entry point called
// name for the dispatchable handle, or 0 if there is none. It has the shape of
// vkGetInstanceProcAddr and vkGetDeviceProcAddr.
type ProcResolver func(handle uintptr, name string) PFN

// NewProcResolver returns a ProcResolver that calls the next layer's
// vkGetInstanceProcAddr or vkGetDeviceProcAddr at address next. The layer
// receives this address from the loader's layer link info when the instance
// or device is created.
func NewProcResolver(next PFN) ProcResolver {
	if next == 0 {
		panic("swapchain: NewProcResolver called with a null function pointer")
	}
	var resolve func(handle uintptr, name string) PFN
	purego.RegisterFunc(&resolve, uintptr(next))
	return resolve
}

// BindInstanceFuncs resolves every instance function the layer forwards to
// and binds it to a callable Go function.
func BindInstanceFuncs(resolve ProcResolver, instance Instance) (InstanceFuncs, error) {
	funcs := InstanceFuncs{}
	if err := bindFuncs(&funcs, resolve, uintptr(instance)); err != nil {
		return InstanceFuncs{}, errors.Wrapf(err, "Binding functions of %v", instance)
	}
	return funcs, nil
}

// BindDeviceFuncs resolves every device function the layer forwards to and
// binds it to a callable Go function.
func BindDeviceFuncs(resolve ProcResolver, device Device) (DeviceFuncs, error) {
	funcs := DeviceFuncs{}
	if err := bindFuncs(&funcs, resolve, uintptr(device)); err != nil {
		return DeviceFuncs{}, errors.Wrapf(err, "Binding functions of %v", device)
	}
	return funcs, nil
}

// bindFuncs fills each func field of the struct pointed to by table that has
// a vk tag. All missing entry points are reported together.
func bindFuncs(table interface{}, resolve ProcResolver, handle uintptr) error {
	v := reflect.ValueOf(table).Elem()
	t := v.Type()
	missing := []string{}
	for i := 0; i < t.NumField(); i++ {
		name, ok := t.Field(i).Tag.Lookup("vk")
		if !ok {
			continue
		}
		pfn := resolve(handle, name)
		if pfn == 0 {
			missing = append(missing, name)
			continue
		}
		purego.RegisterFunc(v.Field(i).Addr().Interface(), uintptr(pfn))
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrMissingProc, "%s", strings.Join(missing, ", "))
	}
	return nil
}
