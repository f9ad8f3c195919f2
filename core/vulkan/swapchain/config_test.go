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
	"testing"

	"github.com/holm-xie/gapid/core/assert"
	"github.com/holm-xie/gapid/core/log"
	"github.com/holm-xie/gapid/core/vulkan/swapchain"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestConfigFromEnv(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		name     string
		vars     map[string]string
		expect   swapchain.Config
		warnings int
	}{
		{"empty", nil, swapchain.DefaultConfig(), 0},
		{"all set", map[string]string{
			swapchain.EnvLogLevel:       "DEBUG",
			swapchain.EnvStrict:         "1",
			swapchain.EnvCheckLockOrder: "false",
		}, swapchain.Config{LogLevel: log.Debug, Strict: true, CheckLockOrder: false}, 0},
		{"bad values", map[string]string{
			swapchain.EnvLogLevel: "loud",
			swapchain.EnvStrict:   "sometimes",
		}, swapchain.DefaultConfig(), 2},
	} {
		r := &recorder{}
		got := swapchain.ConfigFromEnv(log.PutHandler(ctx, r), env(test.vars))
		assert.For(ctx, "%s config", test.name).That(got).Equals(test.expect)
		assert.For(ctx, "%s warnings", test.name).ThatInteger(len(r.at(log.Warning))).Equals(test.warnings)
	}
}
