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
Package aggregate maintains running statistics over decoded log entries in
constant space.

The aggregator keeps per-level counts, the global timestamp range, and
message-length statistics. Every update is O(1) and no entry history is
retained, so it can sit behind an unbounded stream. Message lengths are
counted in characters, not bytes.
*/
package aggregate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"logframe/internal/wire"
)

// Aggregator accumulates statistics entry by entry. Each instance should be
// owned by exactly one logical stream.
type Aggregator struct {
	levelCounts [int(wire.MaxLevel) + 1]uint64
	total       uint64

	minTimestamp uint64
	maxTimestamp uint64

	lengthSum uint64
	minLength int
	maxLength int
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// AddEntry folds one entry into the running statistics.
// It fails with wire.ErrInvalidLevel when the entry's level is out of range
// and leaves the statistics untouched.
func (a *Aggregator) AddEntry(e wire.LogEntry) error {
	if !e.Level.Valid() {
		return fmt.Errorf("%w: 0x%02X", wire.ErrInvalidLevel, byte(e.Level))
	}

	length := utf8.RuneCountInString(e.Message)

	if a.total == 0 {
		a.minTimestamp = e.Timestamp
		a.maxTimestamp = e.Timestamp
		a.minLength = length
		a.maxLength = length
	} else {
		if e.Timestamp < a.minTimestamp {
			a.minTimestamp = e.Timestamp
		}
		if e.Timestamp > a.maxTimestamp {
			a.maxTimestamp = e.Timestamp
		}
		if length < a.minLength {
			a.minLength = length
		}
		if length > a.maxLength {
			a.maxLength = length
		}
	}

	a.levelCounts[e.Level]++
	a.total++
	a.lengthSum += uint64(length)
	return nil
}

// Reset clears all counters back to the initial state.
func (a *Aggregator) Reset() {
	*a = Aggregator{}
}

// LevelCount is the count and share of one severity level.
type LevelCount struct {
	Level   wire.Level
	Count   uint64
	Percent float64
}

// TimestampStats is the observed timestamp range in milliseconds.
type TimestampStats struct {
	Min  uint64
	Max  uint64
	Span uint64
}

// MessageStats summarizes message lengths in characters.
type MessageStats struct {
	Average float64
	Min     int
	Max     int
}

// Report is a point-in-time snapshot of the aggregated statistics.
// Levels holds only levels that were actually seen; Timestamps and
// MessageLengths are nil when no entries have been added.
type Report struct {
	TotalEntries   uint64
	Levels         []LevelCount
	Timestamps     *TimestampStats
	MessageLengths *MessageStats
}

// Report builds a snapshot. An empty aggregator yields TotalEntries == 0
// with nil sections; nothing divides by zero.
func (a *Aggregator) Report() Report {
	r := Report{TotalEntries: a.total}
	if a.total == 0 {
		return r
	}

	for lvl, count := range a.levelCounts {
		if count == 0 {
			continue
		}
		r.Levels = append(r.Levels, LevelCount{
			Level:   wire.Level(lvl),
			Count:   count,
			Percent: float64(count) / float64(a.total) * 100,
		})
	}

	r.Timestamps = &TimestampStats{
		Min:  a.minTimestamp,
		Max:  a.maxTimestamp,
		Span: a.maxTimestamp - a.minTimestamp,
	}
	r.MessageLengths = &MessageStats{
		Average: float64(a.lengthSum) / float64(a.total),
		Min:     a.minLength,
		Max:     a.maxLength,
	}
	return r
}

// Summary returns a formatted human-readable block for host harnesses.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("── Log summary ──\n")
	fmt.Fprintf(&b, "  Total entries: %d\n", r.TotalEntries)

	if r.TotalEntries == 0 {
		b.WriteString("  (no data)\n")
		b.WriteString("─────────────────")
		return b.String()
	}

	for _, lc := range r.Levels {
		fmt.Fprintf(&b, "  %-5s %d (%.1f%%)\n", lc.Level, lc.Count, lc.Percent)
	}
	fmt.Fprintf(&b, "  Timestamps:    %d..%d (span %dms)\n",
		r.Timestamps.Min, r.Timestamps.Max, r.Timestamps.Span)
	fmt.Fprintf(&b, "  Message chars: avg %.1f, min %d, max %d\n",
		r.MessageLengths.Average, r.MessageLengths.Min, r.MessageLengths.Max)
	b.WriteString("─────────────────")
	return b.String()
}
