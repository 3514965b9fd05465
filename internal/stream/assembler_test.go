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

package stream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logframe/internal/wire"
)

func encodeAll(t *testing.T, entries []wire.LogEntry) []byte {
	t.Helper()
	var out []byte
	for _, e := range entries {
		buf, err := wire.Encode(e)
		require.NoError(t, err)
		out = append(out, buf...)
	}
	return out
}

func TestSingleChunkSingleEntry(t *testing.T) {
	want := wire.LogEntry{Timestamp: 1700000000000, Level: wire.LevelInfo, Message: "hello"}
	a := New()

	a.Push(encodeAll(t, []wire.LogEntry{want}))
	got := a.ReadEntries()

	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
	assert.Equal(t, 0, a.Stats().BufferedBytes)
}

func TestEntrySplitAcrossChunks(t *testing.T) {
	// The canonical boundary case: two 18-byte records, stream split at
	// byte 15, inside the first record's message.
	entries := []wire.LogEntry{
		{Timestamp: 100, Level: wire.LevelDebug, Message: "Entry 1"},
		{Timestamp: 200, Level: wire.LevelInfo, Message: "Entry 2"},
	}
	data := encodeAll(t, entries)
	require.Len(t, data, 36)

	a := New()
	a.Push(data[:15])
	assert.Empty(t, a.ReadEntries(), "first record is incomplete after 15 bytes")
	assert.Equal(t, 15, a.Stats().BufferedBytes)

	a.Push(data[15:])
	got := a.ReadEntries()
	require.Len(t, got, 2)
	assert.Equal(t, entries[0], got[0])
	assert.Equal(t, entries[1], got[1])
	assert.Equal(t, 0, a.Stats().BufferedBytes)
}

func TestAnySplitPointYieldsSameEntries(t *testing.T) {
	entries := []wire.LogEntry{
		{Timestamp: 1, Level: wire.LevelDebug, Message: "first"},
		{Timestamp: 2, Level: wire.LevelWarn, Message: ""},
		{Timestamp: 3, Level: wire.LevelError, Message: "third with a longer body"},
	}
	data := encodeAll(t, entries)

	for split := 0; split <= len(data); split++ {
		a := New()
		a.Push(data[:split])
		got := a.ReadEntries()
		a.Push(data[split:])
		got = append(got, a.ReadEntries()...)

		require.Equalf(t, entries, got, "split at byte %d", split)
		assert.Equal(t, 0, a.Stats().BufferedBytes)
	}
}

func TestByteAtATime(t *testing.T) {
	entries := []wire.LogEntry{
		{Timestamp: 10, Level: wire.LevelInfo, Message: "drip"},
		{Timestamp: 20, Level: wire.LevelError, Message: "feed"},
	}
	data := encodeAll(t, entries)

	a := New()
	var got []wire.LogEntry
	for _, b := range data {
		a.Push([]byte{b})
		got = append(got, a.ReadEntries()...)
	}

	assert.Equal(t, entries, got, "one-byte chunks must preserve order and content")
	assert.Equal(t, uint64(len(data)), a.Stats().ChunksReceived)
}

func TestBatchedPushesSingleRead(t *testing.T) {
	entries := []wire.LogEntry{
		{Timestamp: 1, Level: wire.LevelInfo, Message: "a"},
		{Timestamp: 2, Level: wire.LevelInfo, Message: "b"},
		{Timestamp: 3, Level: wire.LevelInfo, Message: "c"},
	}
	data := encodeAll(t, entries)

	a := New()
	a.Push(data[:7])
	a.Push(data[7:20])
	a.Push(data[20:])

	assert.Equal(t, entries, a.ReadEntries(), "push never parses; one read drains everything")
}

func TestIdempotentDrain(t *testing.T) {
	a := New()
	a.Push(encodeAll(t, []wire.LogEntry{{Timestamp: 5, Level: wire.LevelInfo, Message: "once"}}))

	require.Len(t, a.ReadEntries(), 1)
	buffered := a.Stats().BufferedBytes

	assert.Empty(t, a.ReadEntries(), "second drain without a push returns nothing")
	assert.Equal(t, buffered, a.Stats().BufferedBytes)
}

func TestStatsAccumulate(t *testing.T) {
	entries := []wire.LogEntry{
		{Timestamp: 1, Level: wire.LevelInfo, Message: "aa"},
		{Timestamp: 2, Level: wire.LevelInfo, Message: "bbb"},
	}
	data := encodeAll(t, entries)

	a := New()
	a.Push(data)
	a.ReadEntries()

	s := a.Stats()
	assert.Equal(t, uint64(1), s.ChunksReceived)
	assert.Equal(t, uint64(2), s.EntriesExtracted)
	assert.Equal(t, uint64(len(data)), s.BytesProcessed)
	assert.Equal(t, 0, s.BufferedBytes)
	assert.Equal(t, uint64(0), s.SkippedBytes)
}

func TestResynchronizationSkipsUndecodableByte(t *testing.T) {
	// One stray byte before a record whose surrounding bytes force the
	// misaligned read to fail the level check rather than look truncated:
	// at offset 0 the bogus length field reads 0x0001, the record appears
	// complete, and the level byte (the timestamp's high byte, 0x05) is
	// invalid, so the assembler advances one byte onto the true boundary.
	want := wire.LogEntry{
		Timestamp: 0x0505050505050505,
		Level:     wire.LevelInfo,
		Message:   strings.Repeat("m", 256),
	}
	data := append([]byte{0xFF}, encodeAll(t, []wire.LogEntry{want})...)

	var reported int
	a := New(WithSkipHandler(func(n int) { reported += n }))
	a.Push(data)
	got := a.ReadEntries()

	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
	assert.Equal(t, uint64(1), a.Stats().SkippedBytes)
	assert.Equal(t, 1, reported)
	assert.Equal(t, 0, a.Stats().BufferedBytes)
}

func TestCorruptTrailingRecordDoesNotAbort(t *testing.T) {
	good := wire.LogEntry{Timestamp: 9, Level: wire.LevelWarn, Message: "kept"}
	data := encodeAll(t, []wire.LogEntry{good})

	// A complete 11-byte record with an invalid level byte. The assembler
	// skips its first byte and then waits: the remaining 10 bytes no longer
	// form a full header.
	corrupt := []byte{
		0x09, 0x09, 0x09, 0x09, 0x09, 0x09, 0x09, 0x09, // timestamp
		0x09,       // invalid level
		0x00, 0x00, // length = 0
	}

	a := New()
	a.Push(append(data, corrupt...))
	got := a.ReadEntries()

	require.Len(t, got, 1)
	assert.Equal(t, good, got[0])
	assert.Equal(t, uint64(1), a.Stats().SkippedBytes)
	assert.Equal(t, wire.HeaderSize-1, a.Stats().BufferedBytes)
}

func TestReset(t *testing.T) {
	a := New()
	a.Push(encodeAll(t, []wire.LogEntry{{Timestamp: 1, Level: wire.LevelInfo, Message: "x"}}))
	a.Push([]byte{0x01, 0x02})
	a.ReadEntries()

	a.Reset()

	s := a.Stats()
	assert.Equal(t, Stats{}, s, "reset zeroes every counter and drops buffered bytes")
	assert.Empty(t, a.ReadEntries())
}

func TestIDIsStable(t *testing.T) {
	a := New()
	assert.NotEmpty(t, a.ID())
	assert.Equal(t, a.ID(), a.ID())
	assert.NotEqual(t, a.ID(), New().ID())
}

func BenchmarkPushRead(b *testing.B) {
	entry := wire.LogEntry{
		Timestamp: 1700000000000,
		Level:     wire.LevelInfo,
		Message:   strings.Repeat("x", 120),
	}
	record, err := wire.Encode(entry)
	if err != nil {
		b.Fatal(err)
	}

	a := New(WithInitialCapacity(64 * 1024))
	b.SetBytes(int64(len(record)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		a.Push(record)
		if out := a.ReadEntries(); len(out) != 1 {
			b.Fatalf("expected 1 entry, got %d", len(out))
		}
	}
}
