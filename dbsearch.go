/*
dbsearch enumerates every way a sequence over the cyclic alphabet a-e can be
reduced by merging adjacent equal symbols. Two equal neighbors c c merge into
one of the two neighbors of c in the alphabet; reductions found in the same
pass whose ranges touch and which reduce to the same symbol are combined.

usage: dbsearch [ --config <file> | --procs <n> | --max-depth <d> | --target <symbol> | --input-file <file> | -v ] <command> [sequence]

commands:

	run	prints the input and one line per created derivation node
	tree	prints the derivation tree in newick format
	stats	prints per-depth node counts as csv

examples:

	dbsearch run aaccadd > nodes.txt 2> log.txt
	dbsearch tree --input-file seq.txt > derivations.nwk
	dbsearch stats --config search.yaml aabbaacc > stats.csv
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jsdoublel/dbsearch/internal/config"
	"github.com/jsdoublel/dbsearch/internal/derive"
	pr "github.com/jsdoublel/dbsearch/internal/prep"
	"github.com/jsdoublel/dbsearch/internal/search"
	"github.com/jsdoublel/dbsearch/internal/stats"
)

const Version = "v0.1.0"

type app struct {
	configFile string
	inputFile  string
	verbose    bool
	procs      int
	maxDepth   int
	target     string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "dbsearch",
		Short:         "Enumerate double-letter reductions of a sequence",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose)
			return a.loadConfig(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML config `file`")
	flags.StringVar(&a.inputFile, "input-file", "", "read the sequence from `file`")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log every pass")
	flags.IntVar(&a.procs, "procs", 1, "number of parallel workers for the combination scan (0 uses all cores)")
	flags.IntVar(&a.maxDepth, "max-depth", 0, "stop after this many passes (0 runs to the fixed point)")
	flags.StringVar(&a.target, "target", "", "stop once the whole sequence reduces to this `symbol`")

	root.AddCommand(
		&cobra.Command{
			Use:   "run [sequence]",
			Short: "Print one line per created derivation node",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.runNodes,
		},
		&cobra.Command{
			Use:   "tree [sequence]",
			Short: "Print the derivation tree in newick format",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.runTree,
		},
		&cobra.Command{
			Use:   "stats [sequence]",
			Short: "Print per-depth node counts as csv",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.runStats,
		},
	)
	return root
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// Config file values, overridden by flags set on the command line
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configFile != "" {
		var err error
		if cfg, err = config.Load(a.configFile); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("procs") {
		cfg.Procs = a.procs
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if flags.Changed("target") {
		cfg.Target = a.target
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Procs = setNProcs(cfg.Procs, a.logger)
	a.cfg = cfg
	return nil
}

func setNProcs(nprocs int, logger *zap.Logger) int {
	maxProcs := runtime.GOMAXPROCS(0)
	switch {
	case nprocs > maxProcs:
		logger.Sugar().Infof("%d is greater than available processes (%d); limit set to %d", nprocs, maxProcs, maxProcs)
		return maxProcs
	case nprocs <= 0:
		logger.Sugar().Infof("number of processes not set; defaulting to %d processes", maxProcs)
		return maxProcs
	default:
		return nprocs
	}
}

func (a *app) readInput(args []string) (derive.Sequence, error) {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	return pr.ReadInput(arg, a.inputFile)
}

// Runs the search over the input with the configured options. obs receive
// every created node.
func (a *app) search(ctx context.Context, seq derive.Sequence, obs ...search.Observer) (*search.Result, error) {
	reg := prometheus.NewRegistry()
	if a.cfg.Output.Metrics != "" {
		obs = append(obs, stats.NewMetrics(reg))
	}
	opts := []search.Option{
		search.WithLogger(a.logger),
		search.WithProcs(a.cfg.Procs),
		search.WithMaxDepth(a.cfg.MaxDepth),
		search.WithObserver(obs...),
	}
	if sym, ok, _ := a.cfg.TargetSymbol(); ok {
		opts = append(opts, search.WithGoal(search.FullReduction(len(seq), sym)))
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	res, err := search.New(seq, opts...).Run(ctx)
	if err != nil {
		return nil, err
	}
	if sym, ok, _ := a.cfg.TargetSymbol(); ok {
		if res.Found {
			a.logger.Sugar().Infof("%s reduces to %s (node %s)", seq, sym, res.Store.Label(res.Match))
		} else {
			a.logger.Sugar().Infof("no derivation of %s reduces to %s", seq, sym)
		}
	}
	err = pr.WriteOutputs(res, len(seq), a.cfg.Output)
	if a.cfg.Output.Metrics != "" {
		err = multierr.Append(err, stats.WriteMetrics(a.cfg.Output.Metrics, reg))
	}
	return res, err
}

func (a *app) runNodes(cmd *cobra.Command, args []string) error {
	seq, err := a.readInput(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, seq); err != nil {
		return err
	}
	logObs := search.NewLogObserver(out)
	_, err = a.search(cmd.Context(), seq, logObs)
	return multierr.Append(err, logObs.Err())
}

func (a *app) runTree(cmd *cobra.Command, args []string) error {
	seq, err := a.readInput(args)
	if err != nil {
		return err
	}
	res, err := a.search(cmd.Context(), seq)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Store.Newick())
	return err
}

func (a *app) runStats(cmd *cobra.Command, args []string) error {
	seq, err := a.readInput(args)
	if err != nil {
		return err
	}
	res, err := a.search(cmd.Context(), seq)
	if err != nil {
		return err
	}
	return pr.WriteLevelStatsCSV(stats.Levels(res, len(seq)), cmd.OutOrStdout())
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "dbsearch encountered an error :: %s\n", err)
		os.Exit(1)
	}
}
