// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package inlmerge

import (
	"errors"
	"fmt"
	"strings"
)

// Reason is a reason why an inline header can't be merged.
type Reason int

const (
	// NotInlSuffix is used when the file doesn't have -inl.h or _inl.h suffix.
	NotInlSuffix Reason = iota + 1
	// ParentUnreadable is used when the parent header can't be read.
	ParentUnreadable
	// NoIncludeAncestor is used when the file is not under include dir.
	NoIncludeAncestor
	// ParentMissingInclude is used when the parent header doesn't
	// #include the file.
	ParentMissingInclude
)

func (r Reason) String() string {
	switch r {
	case NotInlSuffix:
		return "not -inl.h"
	case ParentUnreadable:
		return "parent unreadable"
	case NoIncludeAncestor:
		return "no include dir"
	case ParentMissingInclude:
		return "parent missing include"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

var (
	ErrNotInlSuffix         = errors.New("not a file with -inl.h or _inl.h suffix")
	ErrParentUnreadable     = errors.New("cannot read parent file")
	ErrNoIncludeAncestor    = errors.New("not in any include folder")
	ErrParentMissingInclude = errors.New("parent file does not include the inline file")
)

func (r Reason) sentinel() error {
	switch r {
	case NotInlSuffix:
		return ErrNotInlSuffix
	case ParentUnreadable:
		return ErrParentUnreadable
	case NoIncludeAncestor:
		return ErrNoIncludeAncestor
	case ParentMissingInclude:
		return ErrParentMissingInclude
	}
	return nil
}

// MergeError is an error for an inline header that can't be merged
// into its parent header.
type MergeError struct {
	// InlPath is the inline header.
	InlPath string
	// ParentPath is the parent header. Empty for NotInlSuffix.
	ParentPath string
	// IncludePath is the path expected in #include directive.
	// Set only for ParentMissingInclude.
	IncludePath string

	Reason Reason
	// Err is underlying error, e.g. I/O error for ParentUnreadable.
	Err error
}

func (e *MergeError) Error() string {
	switch e.Reason {
	case NotInlSuffix:
		return fmt.Sprintf("%s is not a file with `-inl.h` or `_inl.h` suffix; skipping", e.InlPath)
	case ParentUnreadable:
		return fmt.Sprintf("%s: cannot open parent file: %s: %v; skipping", e.InlPath, e.ParentPath, e.Err)
	case NoIncludeAncestor:
		return fmt.Sprintf("%s is not in any include folder; skipping", e.InlPath)
	case ParentMissingInclude:
		return fmt.Sprintf("%s: %s does not contain the requested -inl.h file: %s; skipping", e.InlPath, e.ParentPath, e.IncludePath)
	}
	return fmt.Sprintf("%s: %v: %v", e.InlPath, e.Reason, e.Err)
}

// Unwrap returns sentinel error of the reason, and underlying error if any.
func (e *MergeError) Unwrap() []error {
	var errs []error
	if s := e.Reason.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// FailedToMerge is the preamble of ErrorList returned by Validator.
const FailedToMerge = "Some files failed to merge:"

// ErrorList is a list of errors with preamble.
type ErrorList struct {
	Preamble string
	Errors   []error
}

func (e *ErrorList) Error() string {
	var sb strings.Builder
	fmt.Fprintln(&sb, e.Preamble)
	for _, err := range e.Errors {
		fmt.Fprintln(&sb, err)
	}
	return sb.String()
}

func (e *ErrorList) Unwrap() []error {
	return e.Errors
}

// Aggregate returns ErrorList of non-nil errs in order,
// or nil if all errs are nil.
func Aggregate(preamble string, errs []error) error {
	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &ErrorList{
		Preamble: preamble,
		Errors:   failed,
	}
}

// PreconditionError is an error when some input files are missing or
// not readable. No file is validated in this case.
type PreconditionError struct {
	Paths []string
}

func (e *PreconditionError) Error() string {
	var sb strings.Builder
	sb.WriteString("The following files are not readable:\n")
	for _, p := range e.Paths {
		fmt.Fprintln(&sb, p)
	}
	return sb.String()
}
