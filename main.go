// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// inlmerge checks -inl.h files can be merged into their parent headers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	log "github.com/golang/glog"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/inlmerge/o11y/clog"
	"go.chromium.org/infra/build/inlmerge/subcmd/check"
	"go.chromium.org/infra/build/inlmerge/subcmd/includes"
	"go.chromium.org/infra/build/inlmerge/subcmd/version"
)

const versionStr = "inlmerge v0.1.0"

func main() {
	os.Exit(inlmergeMain())
}

func getApplication(ctx context.Context) *cli.Application {
	return &cli.Application{
		Name:  "inlmerge",
		Title: "Tool to check -inl.h files can be merged into their parent headers",
		Context: func(context.Context) context.Context {
			return ctx
		},
		Commands: []*subcommands.Command{
			check.Cmd(),
			includes.Cmd(),
			version.Cmd(versionStr),
			subcommands.CmdHelp,
		},
	}
}

func inlmergeMain() int {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(out, "  %s [global flags] <command> [flags] [args]\n", os.Args[0])
		fmt.Fprintf(out, "global flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(out, "Use `%s help` to show commands.\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer signals.HandleInterrupt(cancel)()

	logger := clog.New(ctx)
	defer logger.Close()
	ctx = clog.NewContext(ctx, logger)

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	// Print build information to the log.
	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		if log.V(1) {
			log.Infof("main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
		}
		if log.V(2) {
			for _, m := range buildinfo.Deps {
				log.Infof("deps module: %s", moduleInfo(m))
			}
		}
	}
	return runApp(ctx, flag.Args())
}

// runApp runs the command in args.
// If args[0] is not a command, args are files to check, i.e.
//
//	inlmerge foo-inl.h bar-inl.h
//
// is the same as
//
//	inlmerge check foo-inl.h bar-inl.h
func runApp(ctx context.Context, args []string) int {
	app := getApplication(ctx)
	if len(args) > 0 && !isCommand(app, args[0]) {
		args = append([]string{"check"}, args...)
	}
	return subcommands.Run(app, args)
}

func isCommand(app *cli.Application, name string) bool {
	for _, c := range app.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
