// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package includes is includes subcommand for debugging check failures.
package includes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/inlmerge/osfs"
	"go.chromium.org/infra/build/inlmerge/scandeps"
)

const usage = `print #include directives in files.

 $ inlmerge includes <path/to/include/pkg/foo.h>...

It prints "<file>:<line>: <include>" for each #include directive.
Use this to see what path the parent header uses to include
its inline header, when "inlmerge check" fails.
`

// Cmd returns the Command for the `includes` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "includes <files>...",
		ShortDesc: "print #include directives in files",
		LongDesc:  usage,
		Advanced:  true,
		CommandRun: func() subcommands.CommandRun {
			return &run{}
		},
	}
}

type run struct {
	subcommands.CommandRunBase
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, a.GetOut(), args)
	return exitCode(a.GetErr(), err)
}

// exitCode reports err to w and returns exit code for it.
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprintf(w, "%v\n%s\n", err, usage)
		return 2
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
}

func (c *run) run(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no file given: %w", flag.ErrHelp)
	}
	ofs := osfs.New("includes")
	var failed int
	for _, fname := range args {
		buf, err := ofs.ReadFile(ctx, fname)
		if err != nil {
			log.Warnf("failed to read %s: %v", fname, err)
			failed++
			continue
		}
		for _, inc := range scandeps.CPPScan(ctx, fname, buf) {
			fmt.Fprintf(w, "%s:%d: %s\n", fname, inc.Line, inc)
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to read %d files", failed)
	}
	return nil
}
