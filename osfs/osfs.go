// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package osfs provides OS Filesystem access.
package osfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"time"

	"go.chromium.org/infra/build/inlmerge/o11y/clog"
	"go.chromium.org/infra/build/inlmerge/o11y/iometrics"
)

// slowThreshold is the duration of an I/O operation to report as slow.
const slowThreshold = 1 * time.Minute

// OSFS provides OS Filesystem access.
// It counts metrics by iometrics.
type OSFS struct {
	*iometrics.IOMetrics
}

// New creates new OSFS.
func New(name string) *OSFS {
	return &OSFS{IOMetrics: iometrics.New(name)}
}

func logSlow(ctx context.Context, name string, dur time.Duration, err error) {
	buf := make([]byte, 4*1024)
	n := runtime.Stack(buf, false)
	clog.Warningf(ctx, "slow op %s: %s %v\n%s", name, dur, err, buf[:n])
}

// ReadFile reads the named file and returns the contents.
func (ofs *OSFS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	started := time.Now()
	buf, err := os.ReadFile(name)
	ofs.ReadDone(len(buf), err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return buf, err
}

// Stat returns a FileInfo describing the named file.
func (ofs *OSFS) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	started := time.Now()
	fi, err := os.Stat(name)
	ofs.OpsDone(err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return fi, err
}

// CheckReadable checks name is a regular file readable by
// the current process.
func (ofs *OSFS) CheckReadable(ctx context.Context, name string) error {
	fi, err := ofs.Stat(ctx, name)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return &fs.PathError{Op: "check", Path: name, Err: fmt.Errorf("not a regular file: %s", fi.Mode().Type())}
	}
	started := time.Now()
	err = checkAccess(name)
	ofs.OpsDone(err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return err
}

// Unreadable returns names that are not regular files readable by
// the current process, in the given order.
func (ofs *OSFS) Unreadable(ctx context.Context, names []string) []string {
	var bad []string
	for _, name := range names {
		err := ofs.CheckReadable(ctx, name)
		if err != nil {
			clog.Infof(ctx, "unreadable %s: %v", name, err)
			bad = append(bad, name)
		}
	}
	return bad
}
