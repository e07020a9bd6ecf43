// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package inlmerge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeFS is an in-memory FileReader.
type fakeFS struct {
	mu    sync.Mutex
	files map[string]string
	reads []string
}

func (f *fakeFS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, name)
	s, ok := f.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return []byte(s), nil
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	if err == nil {
		return 0
	}
	var merr *MergeError
	if !errors.As(err, &merr) {
		t.Fatalf("err=%v (%T); want *MergeError", err, err)
	}
	return merr.Reason
}

func TestValidateOne(t *testing.T) {
	ctx := context.Background()
	fsys := &fakeFS{
		files: map[string]string{
			"dir/fancy.h":                   "#include <fancy-inl.h>\n",
			"/abs/path/include/pkg/foo.h":   "class Foo {};\n    #include \"pkg/foo-inl.h\"\n",
			"/abs/path/include/pkg/bar.h":   "#include \"pkg/other-inl.h\"\n",
			"/abs/path/include/pkg/baz.h":   "#include <pkg/baz_inl.h>\n",
			"/abs/path/include/pkg/bin.h":   "#include \"pkg/bin-inl.h\"\n\xff\xfe",
			"/abs/path/include/pkg/deep.h":  "#include \"deep-inl.h\"\n",
			"/abs/path/include/./pkg/dot.h": "#include \"pkg/dot-inl.h\"\n",
		},
	}
	v := &Validator{FS: fsys}
	for _, tc := range []struct {
		name    string
		inlPath string
		want    Reason
	}{
		{
			name:    "not-inl",
			inlPath: "/abs/path/include/pkg/foo.h",
			want:    NotInlSuffix,
		},
		{
			name:    "no-include-ancestor",
			inlPath: "dir/fancy-inl.h",
			want:    NoIncludeAncestor,
		},
		{
			name:    "ok-quote",
			inlPath: "/abs/path/include/pkg/foo-inl.h",
		},
		{
			name:    "ok-underscore-angle",
			inlPath: "/abs/path/include/pkg/baz_inl.h",
		},
		{
			name:    "ok-dot-component",
			inlPath: "/abs/path/include/./pkg/dot-inl.h",
		},
		{
			name:    "missing-include",
			inlPath: "/abs/path/include/pkg/bar-inl.h",
			want:    ParentMissingInclude,
		},
		{
			name:    "include-without-dir",
			inlPath: "/abs/path/include/pkg/deep-inl.h",
			want:    ParentMissingInclude,
		},
		{
			name:    "parent-missing",
			inlPath: "/abs/path/include/pkg/none-inl.h",
			want:    ParentUnreadable,
		},
		{
			name:    "parent-not-utf8",
			inlPath: "/abs/path/include/pkg/bin-inl.h",
			want:    ParentUnreadable,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateOne(ctx, tc.inlPath)
			if got := reasonOf(t, err); got != tc.want {
				t.Errorf("ValidateOne(ctx, %q)=%v; want reason %v", tc.inlPath, err, tc.want)
			}
		})
	}
}

func TestValidateOne_messages(t *testing.T) {
	ctx := context.Background()
	fsys := &fakeFS{
		files: map[string]string{
			"/src/include/pkg/bar.h": "#include \"pkg/other-inl.h\"\n",
		},
	}
	v := &Validator{FS: fsys}

	err := v.ValidateOne(ctx, "/src/include/pkg/bar-inl.h")
	want := fmt.Sprintf("/src/include/pkg/bar-inl.h: /src/include/pkg/bar.h does not contain the requested -inl.h file: %s; skipping", "pkg/bar-inl.h")
	if err == nil || err.Error() != want {
		t.Errorf("ValidateOne(ctx, bar-inl.h)=%v; want %q", err, want)
	}

	err = v.ValidateOne(ctx, "/src/include/pkg/none-inl.h")
	if !errors.Is(err, ErrParentUnreadable) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ValidateOne(ctx, none-inl.h)=%v; want %v and %v", err, ErrParentUnreadable, fs.ErrNotExist)
	}
	var merr *MergeError
	if !errors.As(err, &merr) || merr.ParentPath != "/src/include/pkg/none.h" {
		t.Errorf("ValidateOne(ctx, none-inl.h)=%#v; want parent /src/include/pkg/none.h", err)
	}
}

func TestValidateOne_noReadWithoutInlSuffix(t *testing.T) {
	ctx := context.Background()
	fsys := &fakeFS{}
	v := &Validator{FS: fsys}
	err := v.ValidateOne(ctx, "include/pkg/foo.hpp")
	if !errors.Is(err, ErrNotInlSuffix) {
		t.Errorf("ValidateOne(ctx, foo.hpp)=%v; want %v", err, ErrNotInlSuffix)
	}
	if len(fsys.reads) != 0 {
		t.Errorf("reads=%q; want no reads", fsys.reads)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	fsys := &fakeFS{
		files: map[string]string{
			"include/a.h": "#include <a-inl.h>\n",
			"include/b.h": "#include <other-inl.h>\n",
			"include/c.h": "#include \"c_inl.h\"\n",
			"d.h":         "#include <d-inl.h>\n",
		},
	}
	inlPaths := []string{
		"include/a-inl.h",
		"include/b-inl.h",
		"include/c_inl.h",
		"d-inl.h",
		"include/e.h",
	}
	for _, jobs := range []int{0, 1, 2, 8} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			v := &Validator{FS: fsys, Jobs: jobs}
			err := v.Validate(ctx, inlPaths)
			var elist *ErrorList
			if !errors.As(err, &elist) {
				t.Fatalf("Validate(ctx, %q)=%v; want *ErrorList", inlPaths, err)
			}
			if elist.Preamble != FailedToMerge {
				t.Errorf("Preamble=%q; want %q", elist.Preamble, FailedToMerge)
			}
			var got []Reason
			var gotPaths []string
			for _, e := range elist.Errors {
				got = append(got, reasonOf(t, e))
				var merr *MergeError
				errors.As(e, &merr)
				gotPaths = append(gotPaths, merr.InlPath)
			}
			want := []Reason{ParentMissingInclude, NoIncludeAncestor, NotInlSuffix}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("reasons diff -want +got:\n%s", diff)
			}
			wantPaths := []string{"include/b-inl.h", "d-inl.h", "include/e.h"}
			if diff := cmp.Diff(wantPaths, gotPaths); diff != "" {
				t.Errorf("paths diff -want +got:\n%s", diff)
			}
		})
	}
}

func TestValidate_allOK(t *testing.T) {
	ctx := context.Background()
	fsys := &fakeFS{
		files: map[string]string{
			"include/a.h": "#include <a-inl.h>\n",
		},
	}
	v := &Validator{FS: fsys}
	if err := v.Validate(ctx, []string{"include/a-inl.h"}); err != nil {
		t.Errorf("Validate(ctx, a-inl.h)=%v; want nil", err)
	}
	if err := v.Validate(ctx, nil); err != nil {
		t.Errorf("Validate(ctx, nil)=%v; want nil", err)
	}
}

func TestValidateAll_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, jobs := range []int{1, 4} {
		v := &Validator{FS: &fakeFS{}, Jobs: jobs}
		_, err := v.ValidateAll(ctx, []string{"include/a-inl.h"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("jobs=%d ValidateAll(canceled ctx, ...)=_, %v; want %v", jobs, err, context.Canceled)
		}
	}
}

type osReader struct{}

func (osReader) ReadFile(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(name)
}

func TestValidate_onDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	pkgDir := filepath.Join(dir, "include", "pkg")
	err := os.MkdirAll(pkgDir, 0755)
	if err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		"foo.h":     "#pragma once\n    #include \"pkg/foo-inl.h\"\n",
		"foo-inl.h": "inline int foo() { return 1; }\n",
		"bar.h":     "#include \"pkg/other-inl.h\"\n",
		"bar-inl.h": "inline int bar() { return 2; }\n",
	} {
		err := os.WriteFile(filepath.Join(pkgDir, name), []byte(content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
	v := &Validator{FS: osReader{}}
	fooInl := filepath.Join(pkgDir, "foo-inl.h")
	if err := v.ValidateOne(ctx, fooInl); err != nil {
		t.Errorf("ValidateOne(ctx, %q)=%v; want nil", fooInl, err)
	}
	barInl := filepath.Join(pkgDir, "bar-inl.h")
	if err := v.ValidateOne(ctx, barInl); !errors.Is(err, ErrParentMissingInclude) {
		t.Errorf("ValidateOne(ctx, %q)=%v; want %v", barInl, err, ErrParentMissingInclude)
	}
}
