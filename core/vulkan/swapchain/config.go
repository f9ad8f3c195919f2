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
	"strconv"

	"github.com/holm-xie/gapid/core/log"
)

// Environment variables read by ConfigFromEnv. A layer is injected by the
// Vulkan loader, so the environment is the only way to configure it.
const (
	EnvLogLevel       = "VIRTUAL_SWAPCHAIN_LOG_LEVEL"
	EnvStrict         = "VIRTUAL_SWAPCHAIN_STRICT"
	EnvCheckLockOrder = "VIRTUAL_SWAPCHAIN_CHECK_LOCK_ORDER"
)

// Config holds the layer's bookkeeping settings.
type Config struct {
	// LogLevel is the lowest severity written to stderr.
	LogLevel log.Severity

	// Strict makes a missing record at an intercepted entry point fatal.
	// Otherwise the failure is logged and the call is forwarded unmodified.
	Strict bool

	// CheckLockOrder validates registry lock order on every acquisition made
	// through a context from Context.Enter. It has no effect in release
	// builds.
	CheckLockOrder bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		LogLevel:       log.Warning,
		Strict:         false,
		CheckLockOrder: true,
	}
}

// ConfigFromEnv builds a Config from the variables returned by lookup,
// normally os.LookupEnv. Unparsable values keep their default and are
// reported as warnings to ctx.
func ConfigFromEnv(ctx context.Context, lookup func(string) (string, bool)) Config {
	cfg := DefaultConfig()
	if v, ok := lookup(EnvLogLevel); ok {
		if s, ok := log.ParseSeverity(v); ok {
			cfg.LogLevel = s
		} else {
			log.W(ctx, "Ignoring %s=%q: not a log level", EnvLogLevel, v)
		}
	}
	parseBool(ctx, lookup, EnvStrict, &cfg.Strict)
	parseBool(ctx, lookup, EnvCheckLockOrder, &cfg.CheckLockOrder)
	return cfg
}

func parseBool(ctx context.Context, lookup func(string) (string, bool), name string, out *bool) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.W(ctx, "Ignoring %s=%q: %v", name, v, err)
		return
	}
	*out = b
}
