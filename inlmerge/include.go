// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package inlmerge

import (
	"regexp"
)

// IncludeMatcher matches #include directive for a path.
type IncludeMatcher struct {
	path string
	re   *regexp.Regexp
}

// NewIncludeMatcher returns IncludeMatcher that matches a line
//
//	#include <path>
//	#include "path"
//
// optionally indented by spaces or tabs.
// path is matched literally.
func NewIncludeMatcher(path string) *IncludeMatcher {
	q := regexp.QuoteMeta(path)
	return &IncludeMatcher{
		path: path,
		re:   regexp.MustCompile(`(?m)^[ \t]*#include\s+(?:<` + q + `>|"` + q + `")`),
	}
}

// Path returns the path to match.
func (m *IncludeMatcher) Path() string {
	return m.path
}

// Match reports whether text has the #include directive.
func (m *IncludeMatcher) Match(text string) bool {
	return m.re.MatchString(text)
}

// ContainsInclude reports whether text has #include directive of path.
func ContainsInclude(text, path string) bool {
	return NewIncludeMatcher(path).Match(text)
}
