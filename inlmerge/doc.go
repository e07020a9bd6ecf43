// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package inlmerge checks inline headers can be merged into their
// parent headers.
//
// An inline header foo/bar-inl.h (or foo/bar_inl.h) holds template or
// inline function bodies for foo/bar.h, and it is expected to be
// included only by the parent header, e.g.
//
//	include/foo/bar.h:
//	  #include "foo/bar-inl.h"
//
// The path in the #include directive is the path relative to the
// include directory.
//
// The check is textual. It doesn't run the C preprocessor, so
// #include in #if 0 block is also considered.
package inlmerge
