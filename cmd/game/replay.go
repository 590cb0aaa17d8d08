package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/tatianab/memory-dive/internal/config"
	"github.com/tatianab/memory-dive/internal/content"
	"github.com/tatianab/memory-dive/internal/engine"
	"github.com/tatianab/memory-dive/internal/models"
	"github.com/tatianab/memory-dive/internal/tui"
)

// replay runs every step of the script at scriptPath through a fresh,
// offline engine, echoes each response to w and writes the transcript.
func replay(ctx context.Context, scriptPath, name string, cfg *config.Config, logger *zap.Logger, w io.Writer) (string, error) {
	script, err := models.ReadScript(scriptPath)
	if err != nil {
		return "", err
	}

	catalog, err := content.Load()
	if err != nil {
		return "", err
	}
	seed := script.Seed
	if seed == 0 {
		seed = cfg.Seed
	}
	eng, err := engine.NewEngine(catalog,
		engine.WithLogger(logger),
		engine.WithSeed(seed),
		engine.WithHistoryLimit(cfg.HistoryLimit))
	if err != nil {
		return "", err
	}
	defer eng.Close()

	for i, step := range script.Steps {
		if step.Command != "" {
			out, err := tui.RunCommand(eng, step.Command)
			if errors.Is(err, tui.ErrQuit) {
				break
			}
			if err != nil {
				return "", fmt.Errorf("step %d: %w", i, err)
			}
			fmt.Fprintf(w, "%s\n  %s\n", step.Command, out)
			continue
		}

		outcome, err := eng.Submit(ctx, step.Query)
		if err != nil {
			return "", fmt.Errorf("step %d: %w", i, err)
		}
		fmt.Fprintf(w, "> %s\n  [%s] %s\n", step.Query, outcome.Resolution.Kind, outcome.Response)
	}

	final := eng.Snapshot()
	return models.WriteTranscript(cfg.TranscriptDir, models.Transcript{
		Name:    name,
		Seed:    eng.Seed(),
		Final:   final,
		History: final.History,
	})
}
