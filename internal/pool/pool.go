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
Package pool provides a fixed-size buffer pool with hit/miss accounting.

POOLING MODEL:
==============
The pool owns a LIFO free list of same-size byte buffers. Acquire pops from
the free list (a hit) or allocates a fresh buffer (a miss) — it never blocks
and never fails. Release zeroes the buffer before reinsertion so no data
leaks across reuses, and drops the buffer outright when the free list is
already at capacity: the pool size is a hard ceiling, not a target.

The free list is deliberately NOT a sync.Pool. The pool must enforce a
capacity ceiling, zero buffers on release, and report exact hit/miss
counts; sync.Pool is GC-owned and offers none of that.
*/
package pool

import (
	"errors"
	"fmt"
	"sync"
)

// Pool errors.
var (
	// ErrSizeMismatch indicates a release of a buffer whose length does not
	// match the pool's buffer size. The free list is left untouched.
	ErrSizeMismatch = errors.New("buffer size mismatch")

	// ErrInvalidSize indicates a non-positive buffer size or pool size.
	ErrInvalidSize = errors.New("invalid pool size")
)

// BufferPool manages reusable fixed-size byte buffers.
//
// The reference behavior is single-consumer, but the free list and counters
// are mutex-guarded so a pool instance can be shared across goroutines.
type BufferPool struct {
	mu         sync.Mutex
	bufferSize int
	poolSize   int
	free       [][]byte

	acquired uint64
	released uint64
	created  uint64
	hits     uint64
	misses   uint64
}

// Stats is a point-in-time snapshot of pool accounting.
type Stats struct {
	Available int     // buffers currently on the free list
	Acquired  uint64  // total Acquire calls
	Released  uint64  // total successful Release calls (including drops)
	Created   uint64  // total buffer allocations (pre-allocation + misses)
	Hits      uint64  // acquisitions served from the free list
	Misses    uint64  // acquisitions that had to allocate
	HitRate   float64 // hits / acquired, 0 when nothing was acquired
}

// New creates a pool of poolSize pre-allocated, zero-filled buffers of
// bufferSize bytes each.
func New(bufferSize, poolSize int) (*BufferPool, error) {
	if bufferSize <= 0 {
		return nil, fmt.Errorf("%w: bufferSize %d", ErrInvalidSize, bufferSize)
	}
	if poolSize <= 0 {
		return nil, fmt.Errorf("%w: poolSize %d", ErrInvalidSize, poolSize)
	}

	p := &BufferPool{
		bufferSize: bufferSize,
		poolSize:   poolSize,
		free:       make([][]byte, 0, poolSize),
	}
	for i := 0; i < poolSize; i++ {
		p.free = append(p.free, make([]byte, bufferSize))
	}
	p.created = uint64(poolSize)
	return p, nil
}

// BufferSize returns the fixed size of every buffer this pool hands out.
func (p *BufferPool) BufferSize() int {
	return p.bufferSize
}

// Acquire returns a zero-filled buffer of the pool's buffer size.
// It never fails: when the free list is empty it allocates a fresh buffer
// (a miss) instead of blocking or erroring.
func (p *BufferPool) Acquire() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.acquired++
	if n := len(p.free); n > 0 {
		buf := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.hits++
		return buf
	}

	p.misses++
	p.created++
	return make([]byte, p.bufferSize)
}

// Release returns a buffer to the pool.
//
// The buffer must be exactly the pool's buffer size or Release fails with
// ErrSizeMismatch without touching the free list. When the free list is
// full the buffer is dropped; otherwise its contents are zeroed before it
// goes back on the list.
func (p *BufferPool) Release(buf []byte) error {
	if len(buf) != p.bufferSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(buf), p.bufferSize)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.released++
	if len(p.free) >= p.poolSize {
		return nil
	}

	clear(buf)
	p.free = append(p.free, buf)
	return nil
}

// Stats returns a snapshot of the pool counters.
func (p *BufferPool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		Available: len(p.free),
		Acquired:  p.acquired,
		Released:  p.released,
		Created:   p.created,
		Hits:      p.hits,
		Misses:    p.misses,
	}
	if p.acquired > 0 {
		s.HitRate = float64(p.hits) / float64(p.acquired)
	}
	return s
}
