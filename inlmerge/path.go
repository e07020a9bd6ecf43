// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package inlmerge

import (
	"path/filepath"
	"strings"
)

// inlSuffixes are recognized suffixes of inline headers.
// Both have the same length.
var inlSuffixes = []string{"-inl.h", "_inl.h"}

const includeDir = "include"

// ParentPath returns the path of the parent header of inlPath.
//
//	dir/fancy-inl.h -> dir/fancy.h
//	dir/fancy_inl.h -> dir/fancy.h
//
// It returns false if inlPath doesn't end with -inl.h or _inl.h.
func ParentPath(inlPath string) (string, bool) {
	for _, suffix := range inlSuffixes {
		if len(inlPath) < len(suffix) {
			continue
		}
		if strings.HasSuffix(inlPath, suffix) {
			return inlPath[:len(inlPath)-len(suffix)] + ".h", true
		}
	}
	return "", false
}

// IncludeRelativePath returns the path of inlPath relative to the
// first "include" directory in it, i.e. the path that would be used in
// #include directive.
//
//	/abs/path/include/my-package/my-include-inl.h -> my-package/my-include-inl.h
//
// It returns false if no path component is "include".
// If "include" is the last component, it returns "" and true.
func IncludeRelativePath(inlPath string) (string, bool) {
	comps := pathComponents(inlPath)
	for i, c := range comps {
		if c != includeDir {
			continue
		}
		return strings.Join(comps[i+1:], string(filepath.Separator)), true
	}
	return "", false
}

// pathComponents splits p into its components.
// Volume name and root are dropped, and repeated separators are
// collapsed. "." is dropped unless it is the first component of a
// relative path. ".." is kept as is.
func pathComponents(p string) []string {
	p = filepath.ToSlash(p[len(filepath.VolumeName(p)):])
	rooted := strings.HasPrefix(p, "/")
	var comps []string
	for _, c := range strings.Split(p, "/") {
		if c == "" {
			continue
		}
		if c == "." && (rooted || len(comps) > 0) {
			continue
		}
		comps = append(comps, c)
	}
	return comps
}
