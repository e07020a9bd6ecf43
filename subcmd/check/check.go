// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package check is check subcommand to validate inline headers can be
// merged into their parent headers.
package check

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/inlmerge/inlmerge"
	"go.chromium.org/infra/build/inlmerge/o11y/clog"
	"go.chromium.org/infra/build/inlmerge/osfs"
)

const usage = `check inline headers can be merged into their parents.

 $ inlmerge check [-j <n>] <path/to/include/pkg/foo-inl.h>...

For each foo-inl.h (or foo_inl.h), it checks the parent header foo.h
has "#include <pkg/foo-inl.h>" or "#include "pkg/foo-inl.h"",
where the path is relative to the include directory.

It fails without checking any file if some file is not readable.
`

// Cmd returns the Command for the `check` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "check [-j <n>] <files>...",
		ShortDesc: "check inline headers can be merged",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	jobs    int
	verbose bool
}

func (c *run) init() {
	c.Flags.IntVar(&c.jobs, "j", 1, "number of inline headers to check in parallel")
	c.Flags.BoolVar(&c.verbose, "verbose", false, "report inline headers that can be merged")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	return exitCode(a.GetErr(), err)
}

// exitCode reports err to w and returns exit code for it.
func exitCode(w io.Writer, err error) int {
	var precondErr *inlmerge.PreconditionError
	var errList *inlmerge.ErrorList
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprintf(w, "%v\n%s\n", err, usage)
		return 2
	case errors.As(err, &precondErr):
		fmt.Fprint(w, precondErr)
		return 1
	case errors.As(err, &errList):
		fmt.Fprint(w, errList)
		return 1
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
}

func (c *run) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no inline header given: %w", flag.ErrHelp)
	}
	if c.jobs < 1 {
		return fmt.Errorf("-j must be positive, got %d: %w", c.jobs, flag.ErrHelp)
	}
	jobs := min(c.jobs, runtime.NumCPU()*2)

	ofs := osfs.New("check")
	defer func() {
		if clog.FromContext(ctx).V(1) {
			clog.Infof(ctx, "iometrics %s: %s", ofs.Name(), ofs.Stats())
		}
	}()
	if bad := ofs.Unreadable(ctx, args); len(bad) > 0 {
		return &inlmerge.PreconditionError{Paths: bad}
	}

	v := &inlmerge.Validator{
		FS:   ofs,
		Jobs: jobs,
	}
	results, err := v.ValidateAll(ctx, args)
	if err != nil {
		clog.Errorf(ctx, "check interrupted: %v", err)
		return err
	}
	if c.verbose {
		for i, r := range results {
			if r == nil {
				log.Infof("%s can be merged", args[i])
			}
		}
	}
	return inlmerge.Aggregate(inlmerge.FailedToMerge, results)
}
