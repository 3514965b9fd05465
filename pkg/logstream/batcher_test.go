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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatcherRoundTrip(t *testing.T) {
	p, err := NewPool(64, 2)
	require.NoError(t, err)

	var batches [][]byte
	b := NewBatcher(p, func(batch []byte) {
		// The sink owns the batch only for the duration of the call.
		batches = append(batches, append([]byte(nil), batch...))
	})

	entries := []Entry{
		{Timestamp: 1, Level: LevelInfo, Message: "first"},   // 16 bytes
		{Timestamp: 2, Level: LevelWarn, Message: "second"},  // 17 bytes
		{Timestamp: 3, Level: LevelError, Message: "third"},  // 16 bytes
		{Timestamp: 4, Level: LevelDebug, Message: "fourth"}, // 17 bytes, forces a flush
	}
	for _, e := range entries {
		require.NoError(t, b.Add(e))
	}
	b.Flush()

	require.Len(t, batches, 2, "49 bytes fit per 64-byte buffer, the fourth record rolls over")

	// Reassemble everything through the consumer side.
	a := NewAssembler()
	for _, batch := range batches {
		a.Push(batch)
	}
	assert.Equal(t, entries, a.ReadEntries())
}

func TestBatcherReusesPoolBuffers(t *testing.T) {
	p, err := NewPool(64, 1)
	require.NoError(t, err)

	b := NewBatcher(p, func([]byte) {})
	for i := 0; i < 10; i++ {
		require.NoError(t, b.Add(Entry{Timestamp: uint64(i), Level: LevelInfo, Message: strings.Repeat("x", 40)}))
	}
	b.Flush()

	s := p.Stats()
	assert.Equal(t, s.Acquired, s.Hits, "single-buffer pool must serve every round from the free list")
	assert.Equal(t, uint64(1), s.Created)
}

func TestBatcherFlushEmpty(t *testing.T) {
	p, err := NewPool(32, 1)
	require.NoError(t, err)

	calls := 0
	b := NewBatcher(p, func([]byte) { calls++ })
	b.Flush()
	b.Flush()

	assert.Zero(t, calls, "flushing an empty batcher emits nothing")
	assert.Zero(t, b.Buffered())
}

func TestBatcherRejectsOversizedRecord(t *testing.T) {
	p, err := NewPool(16, 1)
	require.NoError(t, err)

	b := NewBatcher(p, func([]byte) {})
	err = b.Add(Entry{Timestamp: 1, Level: LevelInfo, Message: "does not fit in 16"})
	assert.ErrorIs(t, err, ErrRecordTooLarge)
	assert.Zero(t, b.Buffered())
}

func TestBatcherRejectsInvalidEntry(t *testing.T) {
	p, err := NewPool(64, 1)
	require.NoError(t, err)

	b := NewBatcher(p, func([]byte) {})
	assert.ErrorIs(t, b.Add(Entry{Level: 0x05}), ErrInvalidLevel)
	assert.Zero(t, b.Buffered())
}
