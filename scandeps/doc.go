// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scandeps provides simple C preprocessor include scanner.
//
// It only checks the following forms
//
//	#include "foo.h"
//	#include <foo.h>
//	#include_next <foo.h>
//	#import "foo.h"
//
// Macro includes (#include FOO_H) are ignored, since it doesn't
// evaluate #define. It doesn't allow comments nor multiline (\ at
// the end of line) before the path of the directive.
package scandeps
