// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package iometrics manages I/O metrics.
package iometrics

import (
	"fmt"
	"sync"
)

// IOMetrics holds I/O metrics.
type IOMetrics struct {
	name string

	mu sync.Mutex

	ops     int64
	opsErrs int64
	rOps    int64
	rBytes  int64
	rErrs   int64
}

// New returns new iometrics for name.
func New(name string) *IOMetrics {
	return &IOMetrics{name: name}
}

// OpsDone counts when a non read I/O operation is done. err is an I/O operation error.
// e.g. stat, access check.
func (m *IOMetrics) OpsDone(err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops++
	if err != nil {
		m.opsErrs++
	}
}

// ReadDone counts when a read operation is done.
// n is the number of bytes, and err is a read error.
func (m *IOMetrics) ReadDone(n int, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rOps++
	m.rBytes += int64(n)
	if err != nil {
		m.rErrs++
	}
}

// Name returns the name of the iometrics.
func (m *IOMetrics) Name() string {
	if m == nil {
		return "<nil>"
	}
	return m.name
}

// Stats holds iometrics.
type Stats struct {
	// Number of I/O operations other than reads.
	Ops int64
	// Number of I/O operation errors other than read errors.
	OpsErrs int64

	// Number of read operations.
	ROps int64
	// Number of read bytes.
	RBytes int64
	// Number of read errors.
	RErrs int64
}

func (s Stats) String() string {
	return fmt.Sprintf("ops=%d(err:%d) r=%d(err:%d) %dB", s.Ops, s.OpsErrs, s.ROps, s.RErrs, s.RBytes)
}

// Stats returns the snapshot of the iometrics.
func (m *IOMetrics) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Ops:     m.ops,
		OpsErrs: m.opsErrs,
		ROps:    m.rOps,
		RBytes:  m.rBytes,
		RErrs:   m.rErrs,
	}
}
