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

package wire

import (
	"encoding/binary"
	"fmt"
)

// Encode serializes a log entry into its wire form.
//
// VALIDATION:
// - Level must be 0x00-0x03
// - Message byte length must not exceed MaxMessageSize
//
// Validation happens before any allocation. The result is exactly
// HeaderSize + len(message) bytes with no padding; the same entry always
// encodes to the same bytes.
func Encode(e LogEntry) ([]byte, error) {
	if !e.Level.Valid() {
		return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidLevel, byte(e.Level))
	}
	if len(e.Message) > MaxMessageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(e.Message))
	}

	buf := make([]byte, HeaderSize+len(e.Message))
	binary.LittleEndian.PutUint64(buf, e.Timestamp)
	buf[LevelOffset] = byte(e.Level)
	binary.LittleEndian.PutUint16(buf[LengthOffset:], uint16(len(e.Message)))
	copy(buf[HeaderSize:], e.Message)
	return buf, nil
}

// AppendEncode appends the wire form of an entry to dst and returns the
// extended slice. Use with a pooled buffer to encode back-to-back records
// without per-record allocation.
func AppendEncode(dst []byte, e LogEntry) ([]byte, error) {
	if !e.Level.Valid() {
		return dst, fmt.Errorf("%w: 0x%02X", ErrInvalidLevel, byte(e.Level))
	}
	if len(e.Message) > MaxMessageSize {
		return dst, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(e.Message))
	}

	ts := e.Timestamp
	dst = append(dst,
		byte(ts), byte(ts>>8), byte(ts>>16), byte(ts>>24),
		byte(ts>>32), byte(ts>>40), byte(ts>>48), byte(ts>>56))
	dst = append(dst, byte(e.Level))
	n := len(e.Message)
	dst = append(dst, byte(n), byte(n>>8))
	return append(dst, e.Message...), nil
}

// Decode parses one record from data starting at offset.
//
// RETURNS:
// - The decoded entry and the number of bytes consumed (HeaderSize +
//   message length), so a caller can advance a cursor across back-to-back
//   records in a single buffer.
// - ErrNegativeOffset if offset < 0
// - ErrTruncatedHeader if fewer than HeaderSize bytes remain at offset
// - ErrTruncatedBody if the declared message length exceeds the remaining bytes
// - ErrInvalidLevel if the level byte is outside 0x00-0x03
//
// Decode never returns a partial entry and has no side effects; the message
// is copied out of data, so the caller may reuse the input buffer.
func Decode(data []byte, offset int) (LogEntry, int, error) {
	if offset < 0 {
		return LogEntry{}, 0, fmt.Errorf("%w: %d", ErrNegativeOffset, offset)
	}
	if len(data)-offset < HeaderSize {
		return LogEntry{}, 0, ErrTruncatedHeader
	}

	hdr := data[offset:]
	msgLen := int(binary.LittleEndian.Uint16(hdr[LengthOffset:]))
	total := HeaderSize + msgLen
	if len(data)-offset < total {
		return LogEntry{}, 0, fmt.Errorf("%w: need %d bytes, have %d",
			ErrTruncatedBody, total, len(data)-offset)
	}

	level := Level(hdr[LevelOffset])
	if !level.Valid() {
		return LogEntry{}, 0, fmt.Errorf("%w: 0x%02X", ErrInvalidLevel, hdr[LevelOffset])
	}

	e := LogEntry{
		Timestamp: binary.LittleEndian.Uint64(hdr),
		Level:     level,
		Message:   string(hdr[HeaderSize:total]),
	}
	return e, total, nil
}

// RecordSize reports the total encoded size of the record starting at offset,
// or ErrTruncatedHeader when the length field is not yet available. It does
// not validate the level byte or the body; the assembler uses it to decide
// whether a record is complete before attempting a decode.
func RecordSize(data []byte, offset int) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeOffset, offset)
	}
	if len(data)-offset < HeaderSize {
		return 0, ErrTruncatedHeader
	}
	return HeaderSize + int(binary.LittleEndian.Uint16(data[offset+LengthOffset:])), nil
}
