// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build windows

package osfs

import (
	"io/fs"

	"golang.org/x/sys/windows"
)

// checkAccess opens name for reading, since windows has no access(2).
func checkAccess(name string) error {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return &fs.PathError{Op: "access", Path: name, Err: err}
	}
	h, err := windows.CreateFile(p,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0)
	if err != nil {
		return &fs.PathError{Op: "access", Path: name, Err: err}
	}
	return windows.CloseHandle(h)
}
