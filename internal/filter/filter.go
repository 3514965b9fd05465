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
Package filter discards encoded records below a severity threshold without
decoding them.

The filter runs on every record in the hot path, so it reads exactly one
byte per candidate — the level byte at its fixed header offset — and returns
the surviving input slices by reference. No length parsing, no message
decoding, no per-record allocation.
*/
package filter

import "logframe/internal/wire"

// ByLevel returns the subsequence of encoded records whose level is at
// least min, preserving input order. The returned slices alias the input.
//
// Records shorter than a full header are malformed and silently dropped;
// the level byte is compared as-is, leaving validation to the decoder.
func ByLevel(encoded [][]byte, min wire.Level) [][]byte {
	out := make([][]byte, 0, len(encoded))
	for _, rec := range encoded {
		if len(rec) < wire.HeaderSize {
			continue
		}
		if wire.Level(rec[wire.LevelOffset]) >= min {
			out = append(out, rec)
		}
	}
	return out
}
