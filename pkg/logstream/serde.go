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
	"fmt"

	"github.com/hamba/avro/v2"

	"logframe/internal/aggregate"
	"logframe/internal/wire"
)

// Avro schemas for hosts exporting decoded entries or aggregate reports to
// analytics pipelines. The native record format (wire form) stays the
// interchange contract between logframe peers; avro is the outbound face.

const entrySchemaJSON = `{
  "type": "record",
  "name": "LogEntry",
  "namespace": "logframe",
  "fields": [
    {"name": "timestamp", "type": "long"},
    {"name": "level", "type": "int"},
    {"name": "message", "type": "string"}
  ]
}`

const reportSchemaJSON = `{
  "type": "record",
  "name": "Report",
  "namespace": "logframe",
  "fields": [
    {"name": "total_entries", "type": "long"},
    {"name": "levels", "type": {"type": "array", "items": {
      "type": "record",
      "name": "LevelCount",
      "fields": [
        {"name": "level", "type": "int"},
        {"name": "count", "type": "long"},
        {"name": "percent", "type": "double"}
      ]
    }}},
    {"name": "timestamp_min", "type": "long"},
    {"name": "timestamp_max", "type": "long"},
    {"name": "timestamp_span", "type": "long"},
    {"name": "length_avg", "type": "double"},
    {"name": "length_min", "type": "int"},
    {"name": "length_max", "type": "int"}
  ]
}`

var (
	entrySchema  = avro.MustParse(entrySchemaJSON)
	reportSchema = avro.MustParse(reportSchemaJSON)
)

type avroEntry struct {
	Timestamp int64  `avro:"timestamp"`
	Level     int    `avro:"level"`
	Message   string `avro:"message"`
}

type avroLevelCount struct {
	Level   int     `avro:"level"`
	Count   int64   `avro:"count"`
	Percent float64 `avro:"percent"`
}

type avroReport struct {
	TotalEntries  int64            `avro:"total_entries"`
	Levels        []avroLevelCount `avro:"levels"`
	TimestampMin  int64            `avro:"timestamp_min"`
	TimestampMax  int64            `avro:"timestamp_max"`
	TimestampSpan int64            `avro:"timestamp_span"`
	LengthAvg     float64          `avro:"length_avg"`
	LengthMin     int              `avro:"length_min"`
	LengthMax     int              `avro:"length_max"`
}

// EntrySchema returns the avro schema for exported entries, for registration
// in external schema registries.
func EntrySchema() avro.Schema {
	return entrySchema
}

// ReportSchema returns the avro schema for exported reports.
func ReportSchema() avro.Schema {
	return reportSchema
}

// MarshalEntryAvro encodes a decoded entry as an avro record.
func MarshalEntryAvro(e Entry) ([]byte, error) {
	if !e.Level.Valid() {
		return nil, fmt.Errorf("%w: 0x%02X", wire.ErrInvalidLevel, byte(e.Level))
	}
	return avro.Marshal(entrySchema, avroEntry{
		Timestamp: int64(e.Timestamp),
		Level:     int(e.Level),
		Message:   e.Message,
	})
}

// UnmarshalEntryAvro decodes an avro record produced by MarshalEntryAvro.
func UnmarshalEntryAvro(data []byte) (Entry, error) {
	var ae avroEntry
	if err := avro.Unmarshal(entrySchema, data, &ae); err != nil {
		return Entry{}, fmt.Errorf("unmarshal avro entry: %w", err)
	}
	e := Entry{
		Timestamp: uint64(ae.Timestamp),
		Level:     Level(ae.Level),
		Message:   ae.Message,
	}
	if !e.Level.Valid() {
		return Entry{}, fmt.Errorf("%w: %d", wire.ErrInvalidLevel, ae.Level)
	}
	return e, nil
}

// MarshalReportAvro encodes an aggregate report as an avro record. An empty
// report encodes with zeroed range and length fields.
func MarshalReportAvro(r Report) ([]byte, error) {
	ar := avroReport{
		TotalEntries: int64(r.TotalEntries),
		Levels:       make([]avroLevelCount, 0, len(r.Levels)),
	}
	for _, lc := range r.Levels {
		ar.Levels = append(ar.Levels, avroLevelCount{
			Level:   int(lc.Level),
			Count:   int64(lc.Count),
			Percent: lc.Percent,
		})
	}
	if r.Timestamps != nil {
		ar.TimestampMin = int64(r.Timestamps.Min)
		ar.TimestampMax = int64(r.Timestamps.Max)
		ar.TimestampSpan = int64(r.Timestamps.Span)
	}
	if r.MessageLengths != nil {
		ar.LengthAvg = r.MessageLengths.Average
		ar.LengthMin = r.MessageLengths.Min
		ar.LengthMax = r.MessageLengths.Max
	}
	return avro.Marshal(reportSchema, ar)
}

// UnmarshalReportAvro decodes an avro record produced by MarshalReportAvro.
func UnmarshalReportAvro(data []byte) (Report, error) {
	var ar avroReport
	if err := avro.Unmarshal(reportSchema, data, &ar); err != nil {
		return Report{}, fmt.Errorf("unmarshal avro report: %w", err)
	}

	r := Report{TotalEntries: uint64(ar.TotalEntries)}
	for _, lc := range ar.Levels {
		r.Levels = append(r.Levels, aggregate.LevelCount{
			Level:   Level(lc.Level),
			Count:   uint64(lc.Count),
			Percent: lc.Percent,
		})
	}
	if ar.TotalEntries > 0 {
		r.Timestamps = &aggregate.TimestampStats{
			Min:  uint64(ar.TimestampMin),
			Max:  uint64(ar.TimestampMax),
			Span: uint64(ar.TimestampSpan),
		}
		r.MessageLengths = &aggregate.MessageStats{
			Average: ar.LengthAvg,
			Min:     ar.LengthMin,
			Max:     ar.LengthMax,
		}
	}
	return r, nil
}
