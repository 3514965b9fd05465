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
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"logframe/internal/aggregate"
	"logframe/internal/config"
	"logframe/internal/logging"
	"logframe/internal/stream"
	"logframe/internal/wire"
)

// Parser wires a stream assembler, a severity threshold and an aggregator
// into a single consumer-side object. Feed it chunks in arrival order; it
// hands back the decoded entries at or above the threshold and keeps the
// running statistics current.
//
// Like the assembler it owns, a Parser serves exactly one logical stream
// and is not safe for concurrent use.
type Parser struct {
	id  string
	log zerolog.Logger
	asm *stream.Assembler
	agg *aggregate.Aggregator
	min wire.Level
}

// ParserOption configures a Parser.
type ParserOption func(*parserSettings)

type parserSettings struct {
	min       wire.Level
	aggregate bool
	capacity  int
	log       zerolog.Logger
	onSkip    func(int)
}

// WithMinLevel drops decoded entries below min before they reach the caller
// or the aggregator. The default keeps everything.
func WithMinLevel(min Level) ParserOption {
	return func(s *parserSettings) {
		s.min = min
	}
}

// WithoutAggregation disables statistics collection; Report returns an
// empty report.
func WithoutAggregation() ParserOption {
	return func(s *parserSettings) {
		s.aggregate = false
	}
}

// WithLogger sets the diagnostic logger for the parser and its assembler.
func WithLogger(log zerolog.Logger) ParserOption {
	return func(s *parserSettings) {
		s.log = log
	}
}

// WithInitialCapacity pre-sizes the assembler's accumulation buffer.
func WithInitialCapacity(n int) ParserOption {
	return func(s *parserSettings) {
		s.capacity = n
	}
}

// WithSkipHandler receives the number of bytes discarded whenever the
// assembler has to resynchronize.
func WithSkipHandler(fn func(n int)) ParserOption {
	return func(s *parserSettings) {
		s.onSkip = fn
	}
}

// NewParser creates a parser with the given options.
func NewParser(opts ...ParserOption) *Parser {
	s := parserSettings{
		min:       wire.LevelDebug,
		aggregate: true,
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	p := &Parser{
		id:  uuid.NewString(),
		min: s.min,
	}
	p.log = s.log.With().Str("parser_id", p.id).Logger()

	asmOpts := []stream.Option{stream.WithLogger(p.log)}
	if s.capacity > 0 {
		asmOpts = append(asmOpts, stream.WithInitialCapacity(s.capacity))
	}
	if s.onSkip != nil {
		asmOpts = append(asmOpts, stream.WithSkipHandler(s.onSkip))
	}
	p.asm = stream.New(asmOpts...)

	if s.aggregate {
		p.agg = aggregate.New()
	}
	return p
}

// NewParserFromConfig creates a parser tuned by a config.Config, as loaded
// by the config package from TOML and LOGFRAME_* environment variables.
func NewParserFromConfig(cfg config.Config) *Parser {
	opts := []ParserOption{
		WithMinLevel(cfg.MinLevel()),
		WithInitialCapacity(cfg.Assembler.InitialBufferBytes),
		WithLogger(logging.New("parser")),
	}
	if !cfg.Parser.Aggregate {
		opts = append(opts, WithoutAggregation())
	}
	return NewParser(opts...)
}

// ID returns the parser's correlation ID.
func (p *Parser) ID() string {
	return p.id
}

// Push buffers a chunk without parsing. Use with Drain when the host wants
// to batch several chunks per extraction pass.
func (p *Parser) Push(chunk []byte) {
	p.asm.Push(chunk)
}

// Drain extracts every complete record buffered so far, applies the level
// threshold and updates the aggregator. Entries below the threshold are
// consumed from the stream but not returned and not aggregated.
func (p *Parser) Drain() []Entry {
	decoded := p.asm.ReadEntries()
	if len(decoded) == 0 {
		return nil
	}

	out := decoded[:0]
	for _, e := range decoded {
		if e.Level < p.min {
			continue
		}
		out = append(out, e)
		if p.agg != nil {
			// Level range was already enforced by the decoder.
			_ = p.agg.AddEntry(e)
		}
	}
	return out
}

// Feed is Push followed by Drain, for hosts that process chunk by chunk.
func (p *Parser) Feed(chunk []byte) []Entry {
	p.Push(chunk)
	return p.Drain()
}

// Report returns the aggregator snapshot, or an empty report when
// aggregation is disabled.
func (p *Parser) Report() Report {
	if p.agg == nil {
		return Report{}
	}
	return p.agg.Report()
}

// Stats returns the underlying assembler counters.
func (p *Parser) Stats() AssemblerStats {
	return p.asm.Stats()
}

// Reset clears buffered bytes, counters and statistics.
func (p *Parser) Reset() {
	p.asm.Reset()
	if p.agg != nil {
		p.agg.Reset()
	}
}
