/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package logging provides component-scoped structured logging for logframe,
backed by zerolog.

Every component gets its own logger tagged with a "component" field. Output
and level are configured globally; libraries embedding logframe that want no
diagnostics at all use Nop().
*/
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu       sync.RWMutex
	output   io.Writer = os.Stderr
	level              = zerolog.InfoLevel
	jsonMode bool
)

// SetGlobalLevel sets the minimum level for all loggers created afterwards.
// Unknown strings fall back to "info".
func SetGlobalLevel(s string) {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	mu.Lock()
	level = lvl
	mu.Unlock()
}

// SetOutput redirects all loggers created afterwards to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// SetJSONMode switches between JSON output (true) and the human-readable
// console writer (false, the default).
func SetJSONMode(enabled bool) {
	mu.Lock()
	jsonMode = enabled
	mu.Unlock()
}

// New creates a logger for the named component.
func New(component string) zerolog.Logger {
	mu.RLock()
	w, lvl, useJSON := output, level, jsonMode
	mu.RUnlock()

	if !useJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02T15:04:05.000Z"}
	}
	return zerolog.New(w).Level(lvl).With().
		Timestamp().
		Str("component", component).
		Logger()
}

// Nop returns a logger that discards everything. Components accept a logger
// and default to this one, so diagnostics are strictly opt-in.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
