package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tatianab/memory-dive/internal/config"
	"github.com/tatianab/memory-dive/internal/content"
	"github.com/tatianab/memory-dive/internal/engine"
	"github.com/tatianab/memory-dive/internal/oracle"
	"github.com/tatianab/memory-dive/internal/tui"
)

var (
	verbose bool
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "game",
	Short: "Dive into a memory archive, one search at a time",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd.Context())
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive dive in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd.Context())
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Run a scripted list of queries and write the transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := buildLogger("stderr"); err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = time.Now().UTC().Format("20060102-150405")
		}
		path, err := replay(cmd.Context(), args[0], name, cfg, logger, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "transcript written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	replayCmd.Flags().String("name", "", "transcript name (default: timestamp)")
	rootCmd.AddCommand(playCmd, replayCmd)
}

func buildLogger(output string) error {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{output}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func runPlay(ctx context.Context) error {
	// The TUI owns the terminal, so logs go to a file.
	if err := buildLogger(cfg.LogFile); err != nil {
		return err
	}

	catalog, err := content.Load()
	if err != nil {
		return err
	}

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithSeed(cfg.Seed),
		engine.WithHistoryLimit(cfg.HistoryLimit),
	}
	if cfg.OracleEnabled() {
		orc, err := oracle.New(ctx, cfg.GeminiAPIKey, cfg.Model, catalog.Dialogue.Noise)
		if err != nil {
			logger.Warn("Oracle unavailable, using table noise", zap.Error(err))
		} else {
			defer orc.Close()
			opts = append(opts, engine.WithNoiseSource(orc))
		}
	}

	eng, err := engine.NewEngine(catalog, opts...)
	if err != nil {
		return err
	}
	defer eng.Close()
	logger.Info("Dive started", zap.Int64("seed", eng.Seed()))

	return tui.Run(eng)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
