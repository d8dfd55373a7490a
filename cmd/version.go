// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/flowacc/internal/build"
)

// NewVersionCommand returns the command to get the flowacc version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Return the flowacc version",
		Long:  "Return the flowacc version.",
		RunE:  version,
		Args:  cobra.NoArgs,
	}
}

// print out the built version
func version(cmd *cobra.Command, _ []string) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "flowacc version %s date %s commit %s\n", build.Version, build.Date, build.Commit)
	return err
}
