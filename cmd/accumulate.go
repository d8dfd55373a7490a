// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	"github.com/katalvlaran/flowacc/accum"
	"github.com/katalvlaran/flowacc/logger"
	"github.com/katalvlaran/flowacc/raster"
	"github.com/katalvlaran/flowacc/rasterio"
)

// result is the outcome of one input, reported by --summary.
type result struct {
	index  int
	Input  string `json:"input"`
	Output string `json:"output"`
	// Checksum is the xxhash64 of the result file, for reproducibility checks.
	Checksum string        `json:"checksum"`
	Summary  accum.Summary `json:"summary"`
}

// accumulateFunc processes one input file.
type accumulateFunc func(ctx context.Context, cfg runConfig, log *logger.ZapLogger, input string) (result, error)

// NewD8Command returns the command accumulating D8 direction grids.
func NewD8Command() *cobra.Command {
	return &cobra.Command{
		Use:   "d8 <directions.asc>...",
		Short: "Accumulate single-direction (D8) flow grids",
		Long: `Accumulate single-direction (D8) flow grids.

Each input is an ESRI ASCII grid of direction codes: 0 no flow, 1 W, 2 NW,
3 N, 4 NE, 5 E, 6 SE, 7 S, 8 SW. The result counts, for every cell, the
cell itself plus every cell upstream of it. No-data cells are written as
4294967295.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccumulate(cmd, args, accumulateD8)
		},
	}
}

// NewMFDCommand returns the command accumulating proportion documents.
func NewMFDCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "mfd <proportions.yaml|json>...",
		Short: "Accumulate multiple-flow-direction proportion fields",
		Long: `Accumulate multiple-flow-direction proportion fields.

Each input is a YAML or JSON document listing, for every routed cell, the
fraction of its outflow sent to each neighbour. The result is written as an
ESRI ASCII grid; no-data cells are written as -1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccumulate(cmd, args, accumulateMFD)
		},
	}

	flags := command.Flags()
	flags.String(weightsFlag, "", "ESRI ASCII grid of per-cell contributions (e.g. rainfall); default 1 per cell")
	mustBindPFlag(weightsFlag, flags.Lookup(weightsFlag))
	mustBindEnv(weightsFlag, "FLOWACC_WEIGHTS")

	return command
}

// runAccumulate processes every input on a bounded pool, then reports.
func runAccumulate(cmd *cobra.Command, inputs []string, fn accumulateFunc) error {
	cfg, err := readRunConfig()
	if err != nil {
		return err
	}
	log, err := logger.NewLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("run_id", ulid.Make().String()))

	if cfg.Output != "" {
		if err = os.MkdirAll(cfg.Output, 0o750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	p := pool.NewWithResults[result]().
		WithContext(cmd.Context()).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(cfg.Parallel)
	for i, input := range inputs {
		i, input := i, input
		p.Go(func(ctx context.Context) (result, error) {
			r, err := fn(ctx, cfg, log, input)
			if err != nil {
				log.Error("accumulation failed", zap.String("input", input), zap.Error(err))
				return r, fmt.Errorf("%s: %w", input, err)
			}
			r.index = i
			log.Info("result written", zap.String("input", input), zap.String("output", r.Output))

			return r, nil
		})
	}
	results, err := p.Wait()

	if cfg.MetricsTextfile != "" {
		if merr := prometheus.WriteToTextfile(cfg.MetricsTextfile, prometheus.DefaultGatherer); merr != nil {
			err = errors.Join(err, fmt.Errorf("write metrics: %w", merr))
		}
	}
	if err != nil {
		return err
	}
	if cfg.Summary {
		return printSummaries(cmd, results)
	}

	return nil
}

// printSummaries writes one YAML document per result, in input order.
func printSummaries(cmd *cobra.Command, results []result) error {
	ordered := make([]result, len(results))
	for _, r := range results {
		ordered[r.index] = r
	}
	out := cmd.OutOrStdout()
	for _, r := range ordered {
		b, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(out, "---\n%s", b); err != nil {
			return err
		}
	}

	return nil
}

func accumulateD8(ctx context.Context, cfg runConfig, log *logger.ZapLogger, input string) (result, error) {
	hdr, g, err := readASCIIFile(input)
	if err != nil {
		return result{}, err
	}
	dirs, err := rasterio.Directions(g)
	if err != nil {
		return result{}, err
	}
	acc, err := accum.FromDirections(dirs, cfg.options(ctx, log, input)...)
	if err != nil {
		return result{}, err
	}
	s, err := accum.Summarize(dirs, acc, accum.WithBorder(cfg.Border))
	if err != nil {
		return result{}, err
	}
	out := cfg.outputPath(input)
	sum, err := writeASCIIFile(out, hdr, acc)
	if err != nil {
		return result{}, err
	}

	return result{Input: input, Output: out, Checksum: sum, Summary: s}, nil
}

func accumulateMFD(ctx context.Context, cfg runConfig, log *logger.ZapLogger, input string) (result, error) {
	f, err := os.Open(filepath.Clean(input))
	if err != nil {
		return result{}, err
	}
	props, err := rasterio.ReadProportions(f)
	_ = f.Close()
	if err != nil {
		return result{}, err
	}

	opts := cfg.options(ctx, log, input)
	if cfg.Weights != "" {
		_, weights, err := readASCIIFile(cfg.Weights)
		if err != nil {
			return result{}, fmt.Errorf("weights: %w", err)
		}
		opts = append(opts, accum.WithWeights(weights))
	}
	acc, err := accum.FromProportions(props, opts...)
	if err != nil {
		return result{}, err
	}
	s, err := accum.SummarizeProportional(props, acc, accum.WithBorder(cfg.Border))
	if err != nil {
		return result{}, err
	}
	out := cfg.outputPath(input)
	sum, err := writeASCIIFile(out, rasterio.DefaultHeader(acc.Shape()), acc)
	if err != nil {
		return result{}, err
	}

	return result{Input: input, Output: out, Checksum: sum, Summary: s}, nil
}

func readASCIIFile(path string) (*rasterio.Header, *raster.Grid[float64], error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return rasterio.ReadASCII(f)
}

// writeASCIIFile writes g to path and returns the hex xxhash64 of the bytes
// written.
func writeASCIIFile[T raster.Number](path string, hdr *rasterio.Header, g *raster.Grid[T]) (string, error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	h := xxhash.New()
	if err = rasterio.WriteASCII(io.MultiWriter(f, h), hdr, g); err != nil {
		_ = f.Close()
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}

	return strconv.FormatUint(h.Sum64(), 16), nil
}
