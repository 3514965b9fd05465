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
Package stream reassembles complete log records from arbitrarily chunked
byte input.

REASSEMBLY MODEL:
=================
Whatever delivers bytes (socket, file, queue — all external to this module)
splits the record stream at arbitrary boundaries. The assembler accumulates
chunks verbatim and extracts every record that is fully available, retaining
the trailing partial record for the next round:

	Push(chunk)    append-only, never parses
	ReadEntries()  extract all complete records, keep the unconsumed tail

A record whose header or body extends past the accumulated bytes is not an
error; extraction simply stops until more data arrives. Entries come out in
exactly the order their bytes went in, regardless of how the stream was
chunked.

RESYNCHRONIZATION:
==================
When the bytes at the current position form a complete record that fails to
decode (an invalid level byte — corrupted input or a desynchronized frame),
the assembler advances exactly one byte and rescans. Skipped bytes are
counted in Stats().SkippedBytes and reported through the optional skip
handler; no entry is emitted for them. The one-byte advance self-corrects
within one record length and cannot get stuck, unlike a header-lookalike
scan which can lock onto message bodies.
*/
package stream

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"logframe/internal/logging"
	"logframe/internal/wire"
)

// defaultCapacity is the initial accumulation buffer capacity.
const defaultCapacity = 4096

// Stats is a snapshot of cumulative assembler counters.
type Stats struct {
	ChunksReceived   uint64 // Push calls
	EntriesExtracted uint64 // records returned across all ReadEntries calls
	BytesProcessed   uint64 // bytes consumed by extracted records
	SkippedBytes     uint64 // bytes discarded during resynchronization
	BufferedBytes    int    // bytes currently awaiting a complete record
}

// Assembler converts a chunked byte stream into complete log entries.
//
// An assembler owns exactly one logical stream and is not safe for
// concurrent use; give each producer its own instance.
type Assembler struct {
	id  string
	log zerolog.Logger
	buf []byte

	chunks    uint64
	extracted uint64
	processed uint64
	skipped   uint64

	onSkip func(n int)
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Assembler) {
		a.log = log
	}
}

// WithInitialCapacity pre-sizes the accumulation buffer.
func WithInitialCapacity(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.buf = make([]byte, 0, n)
		}
	}
}

// WithSkipHandler registers a callback invoked after each ReadEntries call
// that had to resynchronize, with the number of bytes skipped in that call.
func WithSkipHandler(fn func(n int)) Option {
	return func(a *Assembler) {
		a.onSkip = fn
	}
}

// New creates an empty assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		id:  uuid.NewString(),
		log: logging.Nop(),
		buf: make([]byte, 0, defaultCapacity),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With().Str("stream_id", a.id).Logger()
	return a
}

// ID returns the assembler's correlation ID, also attached to every log line.
func (a *Assembler) ID() string {
	return a.id
}

// Push appends a chunk to the accumulation buffer. Chunks are copied, so the
// caller may reuse its slice. Push never parses; several chunks can be
// batched before a single ReadEntries pass.
func (a *Assembler) Push(chunk []byte) {
	a.buf = append(a.buf, chunk...)
	a.chunks++
}

// ReadEntries extracts every record that is fully available and returns them
// in arrival order. The consumed prefix is discarded; a trailing partial
// record stays buffered for the next call. Calling again without an
// intervening Push returns nothing.
func (a *Assembler) ReadEntries() []wire.LogEntry {
	var out []wire.LogEntry
	off := 0
	skippedRun := 0

	for len(a.buf)-off >= wire.HeaderSize {
		total, err := wire.RecordSize(a.buf, off)
		if err != nil {
			break
		}
		if len(a.buf)-off < total {
			// Incomplete body; wait for more data without consuming.
			break
		}

		e, n, err := wire.Decode(a.buf, off)
		if err != nil {
			if errors.Is(err, wire.ErrInvalidLevel) {
				// Corrupted or desynchronized frame: advance one byte and rescan.
				off++
				skippedRun++
				a.skipped++
				continue
			}
			break
		}

		out = append(out, e)
		off += n
		a.extracted++
		a.processed += uint64(n)
	}

	if skippedRun > 0 {
		a.log.Debug().
			Int("skipped_bytes", skippedRun).
			Uint64("skipped_total", a.skipped).
			Msg("resynchronized after undecodable bytes")
		if a.onSkip != nil {
			a.onSkip(skippedRun)
		}
	}

	if off > 0 {
		a.buf = a.buf[:copy(a.buf, a.buf[off:])]
	}
	return out
}

// Stats returns the cumulative counters and the current buffered byte count.
func (a *Assembler) Stats() Stats {
	return Stats{
		ChunksReceived:   a.chunks,
		EntriesExtracted: a.extracted,
		BytesProcessed:   a.processed,
		SkippedBytes:     a.skipped,
		BufferedBytes:    len(a.buf),
	}
}

// Reset discards all buffered bytes and zeroes every counter.
func (a *Assembler) Reset() {
	a.buf = a.buf[:0]
	a.chunks = 0
	a.extracted = 0
	a.processed = 0
	a.skipped = 0
}
