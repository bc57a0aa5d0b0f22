// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package logging builds the zap logger of the command line interface.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config configures the logger.
type Config struct {
	Level string // debug, info, warn, error
	Color bool

	// File is an optional log file receiving JSON records, rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

func levelColors() map[zapcore.Level]*color.Color {
	colors := map[zapcore.Level]*color.Color{
		zapcore.DebugLevel: color.New(color.FgMagenta),
		zapcore.InfoLevel:  color.New(color.FgBlue),
		zapcore.WarnLevel:  color.New(color.FgYellow),
		zapcore.ErrorLevel: color.New(color.FgRed),
	}

	for _, c := range colors {
		c.EnableColor()
	}

	return colors
}

// New creates a logger writing human-readable records to console and, if configured, JSON records to a file.
// The returned function flushes and closes the sinks.
func New(cfg Config, console zapcore.WriteSyncer) (*zap.Logger, func() error, error) {
	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	} else {
		level.SetLevel(zap.WarnLevel)
	}

	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder(cfg.Color), zapcore.Lock(console), level)}

	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("nullishguard")

	closer := func() error {
		_ = logger.Sync() // syncing a terminal fails on some platforms
		if file != nil {
			return file.Close()
		}

		return nil
	}

	return logger, closer, nil
}

// Stderr is the default console sink.
func Stderr() zapcore.WriteSyncer { return os.Stderr }

func consoleEncoder(colored bool) zapcore.Encoder {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""

	if colored {
		colors := levelColors()
		encoderConfig.EncodeLevel = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			s := l.CapitalString()
			if c, ok := colors[l]; ok {
				s = c.Sprint(s)
			}

			enc.AppendString(s)
		}
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zapcore.NewConsoleEncoder(encoderConfig)
}
