//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/futuroattore86/Ale-Abbey-Beer-Tycoon-Calculator/optimizer"
)

type searchOptions struct {
	configPath      string
	requestPath     string
	verbose         bool
	jsonOut         bool
	required        []string
	unlocked        []string
	unlockedThrough int
	ranges          [optimizer.NumVirtues]string
	workers         int
	partition       string
	memoSize        int
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "brewcalc",
		Short: "Find the best-scoring ingredient mix for target beer virtues",
		Long: `brewcalc enumerates ingredient quantities (0-9 units each, at most 25 units
in total) over the unlocked ingredients and reports the combination whose taste,
color, strength and foam land inside the requested ranges with the best score.`,
		SilenceUsage: true,
	}
	root.AddCommand(newSearchCmd(), newIngredientsCmd())
	return root
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for the optimal combination",
		Example: `  brewcalc search --require base_malt --unlock gruit,honey --taste 2:6 --color 0:3
  brewcalc search --unlocked-through 5 --strength 4 --json
  brewcalc search --request request.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	f.StringVar(&opts.requestPath, "request", "", "read required/unlocked/ranges from a JSON request file")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log search progress to stderr")
	f.BoolVar(&opts.jsonOut, "json", false, "output results as JSON")
	f.StringSliceVarP(&opts.required, "require", "r", nil, "required ingredients (names or indices)")
	f.StringSliceVarP(&opts.unlocked, "unlock", "u", nil, "unlocked ingredients (names or indices)")
	f.IntVar(&opts.unlockedThrough, "unlocked-through", 0, "also unlock the first n ingredients of the unlock order")
	for _, vt := range optimizer.Virtues {
		f.StringVar(&opts.ranges[vt], vt.String(), "0:10", fmt.Sprintf("%s target range low:high (or a single value)", vt))
	}
	f.IntVarP(&opts.workers, "workers", "w", 0, "parallel workers (0 = min(cpus, 4))")
	f.StringVar(&opts.partition, "partition", "", "work split: prefix or first")
	f.IntVar(&opts.memoSize, "memo", 0, "per-worker evaluation cache size (0 = off)")
	return cmd
}

func newIngredientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingredients",
		Short: "List ingredients in unlock order with their virtue coefficients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := optimizer.DefaultCatalog()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatCatalog(cat))
			return nil
		},
	}
}

func runSearch(cmd *cobra.Command, opts *searchOptions) error {
	fc, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	cfg := fc.Config
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("partition") {
		cfg.Partition = optimizer.PartitionStrategy(opts.partition)
	}
	if flags.Changed("memo") {
		cfg.MemoSize = opts.memoSize
	}

	level, _ := parseLogLevel(fc.LogLevel)
	if opts.verbose {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cat, err := optimizer.DefaultCatalog()
	if err != nil {
		return err
	}
	in, err := buildInput(cat, opts)
	if err != nil {
		return err
	}

	opt, err := optimizer.New(cat, cfg)
	if err != nil {
		return err
	}
	res, err := opt.FindOptimal(cmd.Context(), in.Required, in.Ranges, in.Unlocked)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), cat, res, opts.jsonOut)
}

func buildInput(cat *optimizer.Catalog, opts *searchOptions) (searchInput, error) {
	if opts.requestPath != "" {
		data, err := os.ReadFile(opts.requestPath)
		if err != nil {
			return searchInput{}, fmt.Errorf("reading request: %w", err)
		}
		return parseSearchRequest(cat, string(data))
	}

	var in searchInput
	var err error
	if in.Required, err = resolveIngredients(cat, opts.required); err != nil {
		return in, fmt.Errorf("--require: %w", err)
	}
	if in.Unlocked, err = resolveIngredients(cat, opts.unlocked); err != nil {
		return in, fmt.Errorf("--unlock: %w", err)
	}
	in.Unlocked = append(in.Unlocked, cat.UnlockedThrough(opts.unlockedThrough)...)
	for _, vt := range optimizer.Virtues {
		if in.Ranges[vt], err = parseRange(opts.ranges[vt]); err != nil {
			return in, fmt.Errorf("--%s: %w", vt, err)
		}
	}
	if err := optimizer.ValidateRanges(in.Ranges); err != nil {
		return in, err
	}
	return in, nil
}

func writeResult(w io.Writer, cat *optimizer.Catalog, res optimizer.Result, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toResponse(res))
	}
	_, err := fmt.Fprint(w, FormatResult(cat, res))
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
