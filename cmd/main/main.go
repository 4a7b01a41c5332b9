package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/CTAG07/Bramble/pkg/markov"
	"github.com/CTAG07/Bramble/pkg/tally"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app holds what every command needs once the config is loaded.
type app struct {
	config *Config
	logger *slog.Logger
	store  *tally.Store
	close  func()
}

// openApp loads the config, builds the logger and opens the tally store.
func openApp(configPath string, flags *cobra.Command) (*app, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if flags.Flags().Changed("scenario") {
		config.Scenario, _ = flags.Flags().GetString("scenario")
	}
	if flags.Flags().Changed("seed") {
		config.Seed, _ = flags.Flags().GetUint64("seed")
	}
	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(config.LogLevel, os.Stderr)

	path, _, _ := strings.Cut(config.DatabasePath, "?")
	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := initDB(config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err = tally.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := tally.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare tally store: %w", err)
	}
	store.SetLogger(logger)

	return &app{
		config: config,
		logger: logger,
		store:  store,
		close: func() {
			store.Close()
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database", "error", err)
			}
		},
	}, nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "bramble",
		Short:        "Walk the demonstration Markov chains",
		Long:         `Builds one of the demonstration chains, walks it to a terminal state and to a fixed length, and checks the first-step probabilities against the registered weights.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(configPath, cmd)
			if err != nil {
				return err
			}
			defer a.close()

			demo, err := NewDemo(a.config, a.store, a.logger, out)
			if err != nil {
				return err
			}
			a.logger.Info("Starting demo", "scenario", a.config.Scenario, "seed", a.config.Seed)
			return demo.Run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "./config.json", "path to the JSON or YAML config file")
	root.PersistentFlags().String("scenario", "", "override the scenario ("+scenarioFirstOrder+" or "+scenarioSecondOrder+")")
	root.PersistentFlags().Uint64("seed", 0, "override the random seed (0 draws from the global source)")

	root.AddCommand(newTallyCmd(&configPath, out))
	root.AddCommand(newGenerateCmd(out))
	return root
}

func newTallyCmd(configPath *string, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "tally [run...]",
		Short: "Print the recorded outcome counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return printTally(cmd.Context(), a.store, out, args)
		},
	}
}

func newGenerateCmd(out io.Writer) *cobra.Command {
	var order, maxSteps, count int
	cmd := &cobra.Command{
		Use:   "generate [corpus-file]",
		Short: "Train a word chain on a text file (or stdin) and print generated sentences",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer func(f *os.File) {
					_ = f.Close()
				}(f)
				r = f
			}

			seed, _ := cmd.Flags().GetUint64("seed")
			chain, err := markov.NewChain[string](order, markov.WithSource(newSource(seed)))
			if err != nil {
				return err
			}
			tok := markov.NewWordTokenizer()
			if err = markov.Train(chain, tok, r); err != nil {
				return fmt.Errorf("training failed: %w", err)
			}
			for i := 0; i < count; i++ {
				text, err := markov.Generate(chain, tok, nil, maxSteps)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, text)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&order, "order", 2, "chain order")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 100, "maximum tokens per sentence")
	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of sentences")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
