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

package logstream

import (
	"errors"
	"fmt"

	"logframe/internal/pool"
	"logframe/internal/wire"
)

// ErrRecordTooLarge indicates an entry whose encoded size exceeds the
// batcher's buffer size and can therefore never fit in a batch.
var ErrRecordTooLarge = errors.New("record larger than batch buffer")

// Batcher encodes entries back-to-back into pooled fixed-size buffers on
// the producer side, one pool buffer per accumulation round.
//
// When the current buffer cannot hold the next record, the filled prefix is
// handed to the sink and the buffer goes back to the pool, so the sink must
// consume (or copy) the batch before returning. One round trip through
// Add/Flush costs zero allocations once the pool is warm.
type Batcher struct {
	pool *pool.BufferPool
	sink func(batch []byte)
	buf  []byte
	n    int
}

// NewBatcher creates a batcher drawing buffers from p and emitting filled
// batches to sink.
func NewBatcher(p *BufferPool, sink func(batch []byte)) *Batcher {
	return &Batcher{pool: p, sink: sink}
}

// Add encodes one entry into the current batch, flushing first when the
// record does not fit. Validation failures surface before any buffer state
// changes.
func (b *Batcher) Add(e Entry) error {
	if !e.Level.Valid() {
		return fmt.Errorf("%w: 0x%02X", wire.ErrInvalidLevel, byte(e.Level))
	}
	if len(e.Message) > wire.MaxMessageSize {
		return fmt.Errorf("%w: %d bytes", wire.ErrMessageTooLarge, len(e.Message))
	}

	need := wire.HeaderSize + len(e.Message)
	if need > b.pool.BufferSize() {
		return fmt.Errorf("%w: %d bytes into %d-byte buffers", ErrRecordTooLarge, need, b.pool.BufferSize())
	}

	if b.buf != nil && b.n+need > len(b.buf) {
		b.Flush()
	}
	if b.buf == nil {
		b.buf = b.pool.Acquire()
	}

	// The record fits, so the append stays inside the pooled buffer.
	out, err := wire.AppendEncode(b.buf[:b.n], e)
	if err != nil {
		return err
	}
	b.n = len(out)
	return nil
}

// Flush emits the current batch, if any, and returns the buffer to the pool.
func (b *Batcher) Flush() {
	if b.buf == nil {
		return
	}
	if b.n > 0 && b.sink != nil {
		b.sink(b.buf[:b.n])
	}
	// Release only fails on a size mismatch, which cannot happen for a
	// buffer this pool handed out.
	_ = b.pool.Release(b.buf)
	b.buf = nil
	b.n = 0
}

// Buffered returns the byte size of the batch accumulated so far.
func (b *Batcher) Buffered() int {
	return b.n
}
