// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog provides context aware logging.
// It can store arbitrary labels to each context, e.g. the inline header
// being validated, and adds them to each log entry automatically.
//
// It uses Cloud logging.Entry as the log record, and logs to glog.
package clog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/logging"
	"github.com/golang/glog"
)

type contextKeyType int

var contextKey contextKeyType

// DefaultFormatter formats payload prefixed with labels in key order.
//
//	[inl=foo/bar-inl.h] message
func DefaultFormatter(e logging.Entry) string {
	if len(e.Labels) == 0 {
		return fmt.Sprintf("%v", e.Payload)
	}
	keys := make([]string, 0, len(e.Labels))
	for k := range e.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%s", k, e.Labels[k])
	}
	sb.WriteString("] ")
	fmt.Fprintf(&sb, "%v", e.Payload)
	return sb.String()
}

// New creates a new Logger.
func New(ctx context.Context) *Logger {
	return &Logger{
		Formatter: DefaultFormatter,
	}
}

// NewContext sets the given logger to the context.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// WithLabels sets a sub logger with the given labels added to the context.
func WithLabels(ctx context.Context, labels map[string]string) context.Context {
	return NewContext(ctx, FromContext(ctx).With(labels))
}

// FromContext returns a logger in the context, or a new logger if it's not set.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey).(*Logger)
	if !ok || logger == nil {
		return New(ctx)
	}
	return logger
}

// Logger holds arbitrary labels of the context.
// It also can have custom formatter to generate a log content.
type Logger struct {
	// Formatter is a formatter of the entry for glog.
	// Default to DefaultFormatter.
	Formatter func(e logging.Entry) string

	labels map[string]string
}

// With returns a sub logger that has labels in addition to l's labels.
func (l *Logger) With(labels map[string]string) *Logger {
	merged := make(map[string]string, len(l.labels)+len(labels))
	for k, v := range l.labels {
		merged[k] = v
	}
	for k, v := range labels {
		merged[k] = v
	}
	return &Logger{
		Formatter: l.Formatter,
		labels:    merged,
	}
}

func (l *Logger) log(e logging.Entry) {
	format := l.Formatter
	if format == nil {
		format = DefaultFormatter
	}
	msg := format(e)
	switch e.Severity {
	case logging.Info:
		glog.InfoDepth(3, msg)
	case logging.Warning:
		glog.WarningDepth(3, msg)
	case logging.Error:
		glog.ErrorDepth(3, msg)
	default:
		glog.InfoDepth(3, fmt.Sprintf("%s %s", e.Severity, msg))
	}
}

// Infof logs at info log level in the manner of fmt.Printf.
func (l *Logger) Infof(format string, args ...any) {
	l.log(l.Entry(logging.Info, fmt.Sprintf(format, args...)))
}

// Infof logs at info log level in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Info, fmt.Sprintf(format, args...)))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func (l *Logger) Warningf(format string, args ...any) {
	l.log(l.Entry(logging.Warning, fmt.Sprintf(format, args...)))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func Warningf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Warning, fmt.Sprintf(format, args...)))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func Errorf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Error, fmt.Sprintf(format, args...)))
}

// Entry creates a new log entry for the given severity.
func (l *Logger) Entry(severity logging.Severity, payload any) logging.Entry {
	return logging.Entry{
		Timestamp: time.Now(),
		Severity:  severity,
		Payload:   payload,
		Labels:    l.labels,
	}
}

// V checks at verbose log level.
func (l *Logger) V(level int) bool {
	return bool(glog.V(glog.Level(level)))
}

// Close closes the logger. it will flush log entries.
func (l *Logger) Close() {
	glog.Flush()
}
