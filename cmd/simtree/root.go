package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SisyphusMountain/simulate-trees/birthdeath"
	"github.com/SisyphusMountain/simulate-trees/flattree"
	"github.com/SisyphusMountain/simulate-trees/newick"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "simtree <birth_rate> <death_rate> <n_extant>",
		Short: "Simulate a birth-death tree with a fixed number of extant lineages",
		Long: "simtree simulates a phylogenetic tree under a constant-rate " +
			"birth-death process, conditioned on ending with exactly " +
			"n_extant living lineages, and writes it in Newick format.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("expected 3 arguments, got %d\nUsage: %s",
					len(args), cmd.UseLine())
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseArgs(args)
			if err != nil {
				return err
			}
			if err := readConfig(v, cfgFile); err != nil {
				return err
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			return run(cmd.Context(), cmd.OutOrStdout(), log, p, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default .simtree.yaml in . or $HOME)")
	flags.StringP("output", "o", "tree.nwk", "file to write the trees to")
	flags.Uint64("seed", 0, "random seed (default: a random seed, logged)")
	flags.IntP("trees", "n", 1, "number of independent trees to simulate")
	flags.Int("workers", 0, "simulations running at once (default: NumCPU)")
	flags.Int("max-nodes", 0, "abort a simulation that creates more nodes "+
		"than this (0 means no limit)")
	flags.Bool("prune-extinct", false, "only keep extant lineages in the output")
	flags.BoolP("verbose", "v", false, "verbose logging")

	for key, name := range map[string]string{
		"output":        "output",
		"seed":          "seed",
		"trees":         "trees",
		"workers":       "workers",
		"max_nodes":     "max-nodes",
		"prune_extinct": "prune-extinct",
		"verbose":       "verbose",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	v.SetEnvPrefix("SIMTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

// readConfig loads the config file given with --config, or .simtree.yaml
// from the working directory or the home directory if there is one.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
		return nil
	}

	v.SetConfigName(".simtree")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	// It's fine if no config file is found; we use defaults.
	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// parseArgs turns the three positional arguments into simulation
// parameters.
func parseArgs(args []string) (birthdeath.Params, error) {
	birth, err := parseRate(args[0])
	if err != nil {
		return birthdeath.Params{}, fmt.Errorf("birth_rate must be a "+
			"non-negative floating-point number, got '%s'", args[0])
	}
	death, err := parseRate(args[1])
	if err != nil {
		return birthdeath.Params{}, fmt.Errorf("death_rate must be a "+
			"non-negative floating-point number, got '%s'", args[1])
	}
	extant, err := strconv.Atoi(args[2])
	if err != nil || extant < 1 {
		return birthdeath.Params{}, fmt.Errorf("n_extant must be a positive "+
			"integer, got '%s'", args[2])
	}
	return birthdeath.Params{
		BirthRate: birth,
		DeathRate: death,
		Extant:    extant,
	}, nil
}

func parseRate(s string) (float64, error) {
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("rate %g out of range", rate)
	}
	return rate, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run simulates the trees, serializes them and writes them to cfg.Output.
// The reported time covers everything but the write.
func run(
	ctx context.Context,
	stdout io.Writer,
	log *slog.Logger,
	p birthdeath.Params,
	cfg Config,
) error {
	if cfg.Trees < 1 {
		return fmt.Errorf("the number of trees must be positive, got %d",
			cfg.Trees)
	}
	p.MaxNodes = cfg.MaxNodes
	seed := cfg.Seed
	if !cfg.HasSeed {
		seed = rand.Uint64()
	}
	log = log.With("run_id", uuid.NewString())
	log.Debug("starting simulation",
		"birth_rate", p.BirthRate,
		"death_rate", p.DeathRate,
		"n_extant", p.Extant,
		"seed", seed,
		"trees", cfg.Trees,
		"workers", cfg.Workers)

	start := time.Now()
	results, err := birthdeath.SimulateMany(ctx, seed, p, cfg.Trees, cfg.Workers)
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	w := newick.NewWriter(buf)
	for i, res := range results {
		tree, err := outputTree(res, cfg.PruneExtinct)
		if err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		nt, err := tree.Newick()
		if err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		if err := w.Write(nt); err != nil {
			return err
		}
		log.Debug("simulated tree",
			"tree", i,
			"nodes", res.Tree.Len(),
			"fusions", res.Fusions,
			"emergences", res.Emergences,
			"height", res.Height)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := os.WriteFile(cfg.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", cfg.Output, err)
	}
	log.Info("trees written",
		"file", cfg.Output,
		"trees", cfg.Trees,
		"seed", seed,
		"elapsed", elapsed)

	fmt.Fprintf(stdout, "Newick string saved to '%s'.\n", cfg.Output)
	fmt.Fprintf(stdout, "Execution time before writing to disk: %s\n",
		elapsed.Round(time.Microsecond))
	return nil
}

func outputTree(res *birthdeath.Result, prune bool) (*flattree.Tree, error) {
	if prune {
		return res.Reconstructed()
	}
	return res.Tree, nil
}
