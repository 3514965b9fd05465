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
Package logstream is the public surface of logframe.

It re-exports the record codec, stream assembler, buffer pool, level filter
and aggregator, and adds two conveniences on top: Parser, which wires an
assembler, a level threshold and an aggregator into one object, and Batcher,
which encodes records into pooled buffers on the producer side.

logframe defines no transport. Whatever delivers byte chunks — socket, file,
queue — hands them to Parser.Feed (or Assembler.Push) in arrival order; the
rest is in-memory reassembly.
*/
package logstream

import (
	"github.com/rs/zerolog"

	"logframe/internal/aggregate"
	"logframe/internal/filter"
	"logframe/internal/pool"
	"logframe/internal/stream"
	"logframe/internal/wire"
)

// Record format re-exports.
const (
	HeaderSize     = wire.HeaderSize
	MaxMessageSize = wire.MaxMessageSize
)

// Severity levels.
const (
	LevelDebug = wire.LevelDebug
	LevelInfo  = wire.LevelInfo
	LevelWarn  = wire.LevelWarn
	LevelError = wire.LevelError
)

// Core types.
type (
	// Entry is a decoded log record.
	Entry = wire.LogEntry
	// Level is a record severity.
	Level = wire.Level

	// Assembler reassembles records from chunked byte input.
	Assembler = stream.Assembler
	// AssemblerStats is a snapshot of assembler counters.
	AssemblerStats = stream.Stats

	// BufferPool is a fixed-size buffer pool with hit/miss accounting.
	BufferPool = pool.BufferPool
	// PoolStats is a snapshot of pool counters.
	PoolStats = pool.Stats

	// Aggregator maintains O(1)-space statistics over decoded entries.
	Aggregator = aggregate.Aggregator
	// Report is an aggregator snapshot.
	Report = aggregate.Report
)

// Codec errors.
var (
	ErrInvalidLevel    = wire.ErrInvalidLevel
	ErrMessageTooLarge = wire.ErrMessageTooLarge
	ErrTruncatedHeader = wire.ErrTruncatedHeader
	ErrTruncatedBody   = wire.ErrTruncatedBody
	ErrSizeMismatch    = pool.ErrSizeMismatch
)

// Encode serializes an entry into its wire form.
func Encode(e Entry) ([]byte, error) {
	return wire.Encode(e)
}

// AppendEncode appends an entry's wire form to dst.
func AppendEncode(dst []byte, e Entry) ([]byte, error) {
	return wire.AppendEncode(dst, e)
}

// Decode parses one record from data at offset, returning the entry and the
// number of bytes consumed.
func Decode(data []byte, offset int) (Entry, int, error) {
	return wire.Decode(data, offset)
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) Level {
	return wire.ParseLevel(s)
}

// AssemblerOption configures a standalone Assembler.
type AssemblerOption = stream.Option

// WithAssemblerLogger sets the assembler's diagnostic logger.
func WithAssemblerLogger(log zerolog.Logger) AssemblerOption {
	return stream.WithLogger(log)
}

// WithAssemblerCapacity pre-sizes the assembler's accumulation buffer.
func WithAssemblerCapacity(n int) AssemblerOption {
	return stream.WithInitialCapacity(n)
}

// WithAssemblerSkipHandler receives the byte count of each
// resynchronization run.
func WithAssemblerSkipHandler(fn func(n int)) AssemblerOption {
	return stream.WithSkipHandler(fn)
}

// NewAssembler creates an empty stream assembler.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	return stream.New(opts...)
}

// NewPool creates a buffer pool of poolSize buffers of bufferSize bytes.
func NewPool(bufferSize, poolSize int) (*BufferPool, error) {
	return pool.New(bufferSize, poolSize)
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return aggregate.New()
}

// FilterByLevel returns the encoded records whose level is at least min,
// by reference and in order. Buffers shorter than a header are dropped.
func FilterByLevel(encoded [][]byte, min Level) [][]byte {
	return filter.ByLevel(encoded, min)
}
