package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/optimizeai/internal/client/cli"
	"github.com/iudanet/optimizeai/internal/client/iocli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	out := iocli.NewStdio()
	err := cli.Execute(ctx, os.Args[1:], cli.Options{
		Info: cli.BuildInfo{
			Version:   Version,
			BuildDate: BuildDate,
			GitCommit: GitCommit,
		},
		IO: out,
	})
	stop()

	if err != nil {
		cli.PrintError(out, err)
		os.Exit(1)
	}
}
