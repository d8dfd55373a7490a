// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/flowacc/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.NewRootCommand()
	rootCmd.AddCommand(cmd.NewD8Command())
	rootCmd.AddCommand(cmd.NewMFDCommand())
	rootCmd.AddCommand(cmd.NewVersionCommand())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
