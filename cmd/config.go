// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/flowacc/accum"
	"github.com/katalvlaran/flowacc/logger"
	"github.com/katalvlaran/flowacc/raster"
)

// resultSuffix is appended to the input name, minus its extension, to name
// the result grid.
const resultSuffix = ".acc.asc"

// runConfig is the resolved configuration of one accumulation command.
type runConfig struct {
	Output          string
	Workers         int
	Parallel        int
	Border          accum.BorderPolicy
	Connectivity    raster.Connectivity
	Weights         string
	Summary         bool
	MetricsTextfile string
	LogFormat       string
	LogLevel        string
}

// readRunConfig collects flags, environment and config file through viper
// and validates them.
func readRunConfig() (runConfig, error) {
	cfg := runConfig{
		Output:          viper.GetString(outputFlag),
		Workers:         viper.GetInt(workersFlag),
		Parallel:        viper.GetInt(parallelFlag),
		Weights:         viper.GetString(weightsFlag),
		Summary:         viper.GetBool(summaryFlag),
		MetricsTextfile: viper.GetString(metricsTextfileFlag),
		LogFormat:       viper.GetString(logFormatFlag),
		LogLevel:        viper.GetString(logLevelFlag),
	}
	if cfg.Workers < 1 {
		return cfg, fmt.Errorf("--%s must be >= 1, got %d", workersFlag, cfg.Workers)
	}
	if cfg.Parallel < 1 {
		return cfg, fmt.Errorf("--%s must be >= 1, got %d", parallelFlag, cfg.Parallel)
	}

	border, err := accum.ParseBorderPolicy(viper.GetString(borderFlag))
	if err != nil {
		return cfg, err
	}
	cfg.Border = border

	switch c := viper.GetInt(connectivityFlag); c {
	case 4:
		cfg.Connectivity = raster.Conn4
	case 8:
		cfg.Connectivity = raster.Conn8
	default:
		return cfg, fmt.Errorf("--%s must be 4 or 8, got %d", connectivityFlag, c)
	}

	return cfg, nil
}

// options builds the engine options for one input.
func (c runConfig) options(ctx context.Context, log *logger.ZapLogger, input string) []accum.Option {
	inputLog := log.With(zap.String("input", input))

	return []accum.Option{
		accum.WithContext(ctx),
		accum.WithLogger(inputLog),
		accum.WithProgress(progressLogger(inputLog)),
		accum.WithWorkers(c.Workers),
		accum.WithBorder(c.Border),
		accum.WithConnectivity(c.Connectivity),
	}
}

// outputPath names the result grid for input.
func (c runConfig) outputPath(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + resultSuffix
	if c.Output == "" {
		return filepath.Join(filepath.Dir(input), base)
	}

	return filepath.Join(c.Output, base)
}

// progressSteps is the number of progress entries logged per run.
const progressSteps = 10

// progressLogger logs every tenth of a run at debug level.
func progressLogger(log logger.Logger) accum.ProgressFunc {
	next := 1
	return func(done, total int) {
		if done*progressSteps < next*total {
			return
		}
		log.Debug("progress", zap.Int("done", done), zap.Int("total", total), zap.Int("percent", done*100/total))
		for done*progressSteps >= next*total {
			next++
		}
	}
}
