// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package logger is a thin component-tagged facade over zap. Call sites
// pass a short component name ("agent", "gateway", "session") so log lines
// stay greppable per subsystem.

var (
	mu    sync.RWMutex
	base  *zap.Logger
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	base = l
}

// SetDebug toggles debug-level output at runtime.
func SetDebug(enabled bool) {
	if enabled {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

// Sync flushes buffered log entries. Safe to call on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}

func fieldsOf(component string, extra map[string]interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(extra)+1)
	fields = append(fields, zap.String("component", component))
	for k, v := range extra {
		fields = append(fields, zap.Any(k, v))
	}
	return fields
}

func DebugC(component, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	base.Debug(msg, fieldsOf(component, nil)...)
}

func DebugCF(component, msg string, fields map[string]interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	base.Debug(msg, fieldsOf(component, fields)...)
}

func InfoC(component, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	base.Info(msg, fieldsOf(component, nil)...)
}

func InfoCF(component, msg string, fields map[string]interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	base.Info(msg, fieldsOf(component, fields)...)
}

func WarnC(component, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	base.Warn(msg, fieldsOf(component, nil)...)
}

func WarnCF(component, msg string, fields map[string]interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	base.Warn(msg, fieldsOf(component, fields)...)
}

func ErrorC(component, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	base.Error(msg, fieldsOf(component, nil)...)
}

func ErrorCF(component, msg string, fields map[string]interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	base.Error(msg, fieldsOf(component, fields)...)
}
