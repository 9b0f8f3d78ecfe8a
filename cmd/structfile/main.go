// Command structfile reads, writes and appends JSON, text and CSV files.
//
// The format is selected with --format and never inferred from the path.
// Configuration is read from flags, STRUCTFILE_* environment variables and an
// optional structfile.yaml.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/maruel/structfile/internal/cli"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "structfile: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cli.NewRootCmd().ExecuteContext(ctx)
}
