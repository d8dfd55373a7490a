// SPDX-License-Identifier: MIT

// Package cmd contains all the commands included in the flowacc binary.
package cmd

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFlag          = "output"
	workersFlag         = "workers"
	parallelFlag        = "parallel"
	borderFlag          = "border"
	connectivityFlag    = "connectivity"
	summaryFlag         = "summary"
	metricsTextfileFlag = "metrics-textfile"
	logFormatFlag       = "log-format"
	logLevelFlag        = "log-level"
	weightsFlag         = "weights"
)

// NewRootCommand enables all children commands to read flags from CLI flags,
// environment variables prefixed with FLOWACC, or config.yaml (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("FLOWACC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/flowacc", "$HOME/.flowacc", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}
	_ = viper.ReadInConfig()

	command := &cobra.Command{
		Use:   "flowacc",
		Short: "Flow accumulation over raster grids",
		Long: `Flow accumulation over raster grids.

flowacc reads precomputed flow fields (D8 direction codes as ESRI ASCII
grids, or multiple-flow-direction proportion documents in YAML/JSON) and
writes, for every cell, the amount of flow passing through it.`,
		SilenceUsage: true,
	}
	bindRootFlags(command)

	return command
}

// bindRootFlags binds the persistent flags shared by the accumulation
// commands to their viper keys.
func bindRootFlags(command *cobra.Command) {
	flags := command.PersistentFlags()

	flags.String(outputFlag, "", "directory for result grids; empty writes next to each input")
	mustBindPFlag(outputFlag, flags.Lookup(outputFlag))
	mustBindEnv(outputFlag, "FLOWACC_OUTPUT")

	flags.Int(workersFlag, runtime.GOMAXPROCS(0), "goroutines used by the dependency scan of one grid")
	mustBindPFlag(workersFlag, flags.Lookup(workersFlag))
	mustBindEnv(workersFlag, "FLOWACC_WORKERS")

	flags.Int(parallelFlag, 1, "number of input grids processed concurrently")
	mustBindPFlag(parallelFlag, flags.Lookup(parallelFlag))
	mustBindEnv(parallelFlag, "FLOWACC_PARALLEL")

	flags.String(borderFlag, "route", "border policy: 'route' treats border cells normally, 'ignore' runs on interior cells only")
	mustBindPFlag(borderFlag, flags.Lookup(borderFlag))
	mustBindEnv(borderFlag, "FLOWACC_BORDER")

	flags.Int(connectivityFlag, 8, "legal flow directions: 4 (cardinal) or 8")
	mustBindPFlag(connectivityFlag, flags.Lookup(connectivityFlag))
	mustBindEnv(connectivityFlag, "FLOWACC_CONNECTIVITY")

	flags.Bool(summaryFlag, false, "print a YAML summary of every result to stdout")
	mustBindPFlag(summaryFlag, flags.Lookup(summaryFlag))
	mustBindEnv(summaryFlag, "FLOWACC_SUMMARY")

	flags.String(metricsTextfileFlag, "", "write Prometheus metrics to this file when done (node_exporter textfile format)")
	mustBindPFlag(metricsTextfileFlag, flags.Lookup(metricsTextfileFlag))
	mustBindEnv(metricsTextfileFlag, "FLOWACC_METRICS_TEXTFILE")

	flags.String(logFormatFlag, "text", "log format: 'text' or 'json'")
	mustBindPFlag(logFormatFlag, flags.Lookup(logFormatFlag))
	mustBindEnv(logFormatFlag, "FLOWACC_LOG_FORMAT")

	flags.String(logLevelFlag, "info", "log level: 'none', 'debug', 'info', 'warn' or 'error'")
	mustBindPFlag(logLevelFlag, flags.Lookup(logLevelFlag))
	mustBindEnv(logLevelFlag, "FLOWACC_LOG_LEVEL")
}
