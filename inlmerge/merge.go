// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package inlmerge

import (
	"context"
	"errors"
	"path/filepath"
	"unicode/utf8"

	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/infra/build/inlmerge/o11y/clog"
	"go.chromium.org/infra/build/inlmerge/scandeps"
)

// FileReader reads a file.
type FileReader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

var errInvalidUTF8 = errors.New("invalid UTF-8 content")

// Validator validates inline headers can be merged into their parents.
type Validator struct {
	// FS is used to read parent headers.
	FS FileReader

	// Jobs is the number of inline headers validated concurrently.
	// Validated sequentially if Jobs <= 1.
	Jobs int
}

// ValidateOne checks inlPath can be merged into its parent header.
// It returns *MergeError if not.
func (v *Validator) ValidateOne(ctx context.Context, inlPath string) error {
	ctx = clog.WithLabels(ctx, map[string]string{"inl": inlPath})
	logger := clog.FromContext(ctx)
	if logger.V(1) {
		logger.Infof("validate")
	}
	err := v.validateOne(ctx, inlPath)
	if err != nil {
		logger.Warningf("%v", err)
		return err
	}
	if logger.V(1) {
		logger.Infof("can be merged")
	}
	return nil
}

func (v *Validator) validateOne(ctx context.Context, inlPath string) error {
	parentPath, ok := ParentPath(inlPath)
	if !ok {
		return &MergeError{
			InlPath: inlPath,
			Reason:  NotInlSuffix,
		}
	}
	buf, err := v.FS.ReadFile(ctx, parentPath)
	if err == nil && !utf8.Valid(buf) {
		err = errInvalidUTF8
	}
	if err != nil {
		return &MergeError{
			InlPath:    inlPath,
			ParentPath: parentPath,
			Reason:     ParentUnreadable,
			Err:        err,
		}
	}
	relPath, ok := IncludeRelativePath(inlPath)
	if !ok {
		return &MergeError{
			InlPath:    inlPath,
			ParentPath: parentPath,
			Reason:     NoIncludeAncestor,
		}
	}
	// #include always uses '/' regardless of platform.
	m := NewIncludeMatcher(filepath.ToSlash(relPath))
	if !m.Match(string(buf)) {
		if log.V(1) {
			found := scandeps.FindByBase(scandeps.CPPScan(ctx, parentPath, buf), filepath.Base(inlPath))
			for _, inc := range found {
				clog.Infof(ctx, "%s:%d: includes %s, not %q", parentPath, inc.Line, inc, m.Path())
			}
		}
		return &MergeError{
			InlPath:     inlPath,
			ParentPath:  parentPath,
			IncludePath: m.Path(),
			Reason:      ParentMissingInclude,
		}
	}
	return nil
}

// ValidateAll validates each inlPaths and returns the result of
// ValidateOne for each, in the same order as inlPaths.
// It returns error only when ctx is canceled.
func (v *Validator) ValidateAll(ctx context.Context, inlPaths []string) ([]error, error) {
	results := make([]error, len(inlPaths))
	if v.Jobs <= 1 {
		for i, inlPath := range inlPaths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = v.ValidateOne(ctx, inlPath)
		}
		return results, nil
	}
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(v.Jobs)
	for i, inlPath := range inlPaths {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = v.ValidateOne(gctx, inlPath)
			return nil
		})
	}
	err := eg.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Validate validates all inlPaths without stopping at failure.
// It returns *ErrorList with failures in the order of inlPaths,
// or nil if all of them can be merged.
func (v *Validator) Validate(ctx context.Context, inlPaths []string) error {
	results, err := v.ValidateAll(ctx, inlPaths)
	if err != nil {
		return err
	}
	return Aggregate(FailedToMerge, results)
}
