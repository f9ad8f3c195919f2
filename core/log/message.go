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

package log

import (
	"fmt"
	"strings"
	"time"
)

// Message is a single log entry.
type Message struct {
	// The message text.
	Text string

	// The time the message was logged.
	Time time.Time

	// The severity of the message.
	Severity Severity

	// StopProcess is true if the message indicates the process should stop.
	StopProcess bool

	// The tag associated with the log record.
	Tag string

	// Values bound to the context when the message was logged, sorted by name.
	Values Values
}

// Value is a named value.
type Value struct {
	Name  string
	Value interface{}
}

// Values is a list of values, sortable by name.
type Values []*Value

func (v Values) Len() int           { return len(v) }
func (v Values) Less(i, j int) bool { return v[i].Name < v[j].Name }
func (v Values) Swap(i, j int)      { v[i], v[j] = v[j], v[i] }

// Format returns the message as a single line of text.
func (m *Message) Format(withTime bool) string {
	sb := strings.Builder{}
	if withTime {
		sb.WriteString(m.Time.Format("15:04:05.000"))
		sb.WriteRune(' ')
	}
	sb.WriteString(m.Severity.Short())
	sb.WriteRune(' ')
	if m.Tag != "" {
		sb.WriteString(m.Tag)
		sb.WriteString(": ")
	}
	sb.WriteString(m.Text)
	for _, v := range m.Values {
		fmt.Fprintf(&sb, "\n  %v: %v", v.Name, v.Value)
	}
	return sb.String()
}
