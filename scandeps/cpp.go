// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"bytes"
	"context"
	"strings"
	"time"

	log "github.com/golang/glog"

	"go.chromium.org/infra/build/inlmerge/o11y/clog"
)

// Include is an include directive found in a file.
type Include struct {
	// Path is the included path without delimiters.
	Path string
	// Angle is true for <path>, false for "path".
	Angle bool
	// Line is 1-based line number of the directive.
	Line int
}

// String returns the path with its delimiters, as written in the directive.
func (inc Include) String() string {
	if inc.Angle {
		return "<" + inc.Path + ">"
	}
	return `"` + inc.Path + `"`
}

var directives = [][]byte{
	// include_next must be checked before include.
	[]byte("include_next"),
	[]byte("include"),
	[]byte("import"),
}

// CPPScan scans C preprocessor directives for #include in buf.
func CPPScan(ctx context.Context, fname string, buf []byte) []Include {
	started := time.Now()

	var includes []Include
	lineno := 0
	for len(buf) > 0 {
		lineno++
		var line []byte
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			line = buf
			buf = nil
		} else {
			line = buf[:i]
			buf = buf[i+1:]
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] != '#' {
			// not directive line
			continue
		}
		lineStart := line
		line = bytes.TrimSpace(line[1:])

		var found bool
		for _, d := range directives {
			if bytes.HasPrefix(line, d) {
				line = line[len(d):]
				found = true
				break
			}
		}
		if !found {
			// ignore other directives
			if log.V(3) {
				clog.Infof(ctx, "%s:%d: skip %q", fname, lineno, lineStart)
			}
			continue
		}
		if len(line) == 0 {
			// no path for #include?
			if log.V(2) {
				clog.Infof(ctx, "%s:%d: skip %q", fname, lineno, lineStart)
			}
			continue
		}
		switch line[0] {
		case ' ', '\t', '<', '"':
		default:
			// e.g. #includes, #important
			if log.V(2) {
				clog.Infof(ctx, "%s:%d: skip %q", fname, lineno, lineStart)
			}
			continue
		}
		inc, ok := parseIncludePath(bytes.TrimSpace(line))
		if !ok {
			if log.V(1) {
				clog.Infof(ctx, "%s:%d: unclosed path or macro? %q", fname, lineno, lineStart)
			}
			continue
		}
		inc.Line = lineno
		includes = append(includes, inc)
	}
	dur := time.Since(started)
	if dur > time.Second {
		clog.Infof(ctx, "slow cppScan %s %s", fname, dur)
	}
	return includes
}

// parseIncludePath parses "path" or <path> at the beginning of incpath.
// Trailing text after the closing delimiter is ignored.
func parseIncludePath(incpath []byte) (Include, bool) {
	if len(incpath) == 0 {
		return Include{}, false
	}
	var delim byte
	switch incpath[0] {
	case '"':
		delim = '"'
	case '<':
		delim = '>'
	default:
		return Include{}, false
	}
	i := bytes.IndexByte(incpath[1:], delim)
	if i < 0 {
		return Include{}, false
	}
	return Include{
		Path:  string(incpath[1 : i+1]),
		Angle: delim == '>',
	}, true
}

// FindByBase returns includes whose last path element is base.
func FindByBase(includes []Include, base string) []Include {
	var found []Include
	for _, inc := range includes {
		p := inc.Path
		if i := strings.LastIndexByte(p, '/'); i >= 0 {
			p = p[i+1:]
		}
		if p == base {
			found = append(found, inc)
		}
	}
	return found
}
