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
Package config holds the tuning knobs for logframe.

CONFIGURATION SOURCES (in order of precedence):
===============================================
1. Environment variables (LOGFRAME_* prefix)
2. Configuration file (TOML format)
3. Default values

The core packages take plain parameters; this is a convenience layer for
host programs that want their logframe settings in one place. Keys absent
from the file keep their defaults.

EXAMPLE CONFIGURATION FILE:
===========================

	[logging]
	level = "debug"
	json = true

	[pool]
	buffer_bytes = 65536
	pool_size = 32

	[parser]
	min_level = "warn"
*/
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"logframe/internal/wire"
)

// Environment variable names
const (
	EnvLogLevel    = "LOGFRAME_LOG_LEVEL"
	EnvLogJSON     = "LOGFRAME_LOG_JSON"
	EnvBufferBytes = "LOGFRAME_BUFFER_BYTES"
	EnvPoolSize    = "LOGFRAME_POOL_SIZE"
	EnvMinLevel    = "LOGFRAME_MIN_LEVEL"
)

// Config is the full set of logframe tuning knobs.
type Config struct {
	Logging   LoggingConfig   `toml:"logging"`
	Assembler AssemblerConfig `toml:"assembler"`
	Pool      PoolConfig      `toml:"pool"`
	Parser    ParserConfig    `toml:"parser"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	JSON  bool   `toml:"json"`  // JSON lines instead of console format
}

// AssemblerConfig tunes the stream assembler.
type AssemblerConfig struct {
	InitialBufferBytes int `toml:"initial_buffer_bytes"`
}

// PoolConfig sizes the buffer pool.
type PoolConfig struct {
	BufferBytes int `toml:"buffer_bytes"`
	PoolSize    int `toml:"pool_size"`
}

// ParserConfig tunes the high-level parser facade.
type ParserConfig struct {
	MinLevel  string `toml:"min_level"`
	Aggregate bool   `toml:"aggregate"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Assembler: AssemblerConfig{
			InitialBufferBytes: 64 * 1024,
		},
		Pool: PoolConfig{
			BufferBytes: 64 * 1024,
			PoolSize:    16,
		},
		Parser: ParserConfig{
			MinLevel:  "debug",
			Aggregate: true,
		},
	}
}

// Load reads a TOML file over the defaults, then applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides settings from LOGFRAME_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogJSON); v != "" {
		c.Logging.JSON = v == "true" || v == "1"
	}
	if v := os.Getenv(EnvBufferBytes); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Pool.BufferBytes = n
		}
	}
	if v := os.Getenv(EnvPoolSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Pool.PoolSize = n
		}
	}
	if v := os.Getenv(EnvMinLevel); v != "" {
		c.Parser.MinLevel = v
	}
}

// Validate checks the configuration for values the core packages would
// reject later.
func (c Config) Validate() error {
	if c.Assembler.InitialBufferBytes < 0 {
		return fmt.Errorf("assembler.initial_buffer_bytes must not be negative, got %d",
			c.Assembler.InitialBufferBytes)
	}
	if c.Pool.BufferBytes <= 0 {
		return fmt.Errorf("pool.buffer_bytes must be positive, got %d", c.Pool.BufferBytes)
	}
	if c.Pool.PoolSize <= 0 {
		return fmt.Errorf("pool.pool_size must be positive, got %d", c.Pool.PoolSize)
	}
	switch c.Parser.MinLevel {
	case "debug", "info", "warn", "error", "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("parser.min_level must be a log level, got %q", c.Parser.MinLevel)
	}
	return nil
}

// MinLevel returns the parser threshold as a wire level.
func (c Config) MinLevel() wire.Level {
	return wire.ParseLevel(c.Parser.MinLevel)
}
