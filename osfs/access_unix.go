// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build unix

package osfs

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

func checkAccess(name string) error {
	err := unix.Access(name, unix.R_OK)
	if err != nil {
		return &fs.PathError{Op: "access", Path: name, Err: err}
	}
	return nil
}
