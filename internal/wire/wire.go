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
Package wire defines the logframe binary record format.

RECORD FORMAT:
==============
Every log record is a fixed 11-byte header followed by the message bytes:

	+--------+--------+--------+--------+--------+--------+--------+--------+
	|                  Timestamp (8 bytes, little-endian)                   |
	+--------+--------+--------+--------+--------+--------+--------+--------+
	| Level  |  Message length (2B LE) |        Message bytes (UTF-8)      ...
	+--------+--------+--------+--------+-----------------------------------+

HEADER FIELDS:
==============
- Timestamp (8 bytes): Milliseconds since epoch, unsigned little-endian.
  The full 64-bit range is permitted.
- Level (1 byte): Severity, 0x00-0x03 (DEBUG, INFO, WARN, ERROR).
  Any other value is invalid and rejected by the decoder.
- Message length (2 bytes): Byte length of the message, little-endian.
  This bounds messages at 65535 BYTES (not characters).

Total header size: 11 bytes (HeaderSize constant)
Total record size: 11 + message length

EXAMPLE:
========
{Timestamp: 100, Level: INFO, Message: "ok"}:

	64 00 00 00 00 00 00 00   Timestamp: 100
	01                        Level: INFO
	02 00                     Message length: 2
	6F 6B                     Message: "ok"

The layout is a bit-exact contract: two conforming implementations must
produce byte-identical encodings for the same record and must be able to
decode each other's output. There is no magic byte and no version field;
framing recovery after corruption is the stream assembler's job.

All multi-byte fields are LITTLE-endian. Keep every size and offset below in
sync with the codec and the assembler; nothing else in the module is allowed
to hard-code record geometry.
*/
package wire

import "errors"

// Record geometry. Single source of truth for every component that touches
// encoded bytes.
const (
	// TimestampSize is the width of the timestamp field in bytes.
	TimestampSize = 8

	// LevelOffset is the byte offset of the level field within a record.
	LevelOffset = 8

	// LengthOffset is the byte offset of the message-length field.
	LengthOffset = 9

	// HeaderSize is the fixed size of the record header in bytes.
	HeaderSize = 11

	// MaxMessageSize is the maximum message length in bytes.
	// The length field is 16 bits wide.
	MaxMessageSize = 65535
)

// Level represents the severity of a log record.
type Level byte

const (
	// LevelDebug is detailed diagnostic output.
	LevelDebug Level = 0x00
	// LevelInfo is routine operational output.
	LevelInfo Level = 0x01
	// LevelWarn indicates a recoverable anomaly.
	LevelWarn Level = 0x02
	// LevelError indicates a failure.
	LevelError Level = 0x03
)

// MaxLevel is the highest valid level value.
const MaxLevel = LevelError

// Valid reports whether the level is within the encodable range.
func (l Level) Valid() bool {
	return l <= MaxLevel
}

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level. Case-insensitive.
// Unknown strings map to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return LevelDebug
	case "INFO", "info":
		return LevelInfo
	case "WARN", "warn", "WARNING", "warning":
		return LevelWarn
	case "ERROR", "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// LogEntry is the decoded form of a record.
type LogEntry struct {
	Timestamp uint64 // milliseconds since epoch
	Level     Level
	Message   string
}

// Codec errors returned during record encoding and decoding.
var (
	// ErrInvalidLevel indicates a level byte outside 0x00-0x03.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrMessageTooLarge indicates a message longer than MaxMessageSize bytes.
	ErrMessageTooLarge = errors.New("message too large")

	// ErrNegativeOffset indicates a decode call with an offset below zero.
	ErrNegativeOffset = errors.New("negative offset")

	// ErrTruncatedHeader indicates fewer than HeaderSize bytes were available.
	// Through the stream assembler this means "wait for more data", not failure.
	ErrTruncatedHeader = errors.New("truncated header")

	// ErrTruncatedBody indicates the declared message length exceeds the
	// available bytes.
	ErrTruncatedBody = errors.New("truncated body")
)
