package tui

import (
	"github.com/tatianab/memory-dive/internal/config"
	"github.com/tatianab/memory-dive/internal/content"
	"github.com/tatianab/memory-dive/internal/engine"
)

// Start runs an offline dive with configuration from the environment.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	catalog, err := content.Load()
	if err != nil {
		return err
	}
	eng, err := engine.NewEngine(catalog,
		engine.WithSeed(cfg.Seed),
		engine.WithHistoryLimit(cfg.HistoryLimit))
	if err != nil {
		return err
	}
	defer eng.Close()
	return Run(eng)
}
