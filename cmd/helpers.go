package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/termtip/termtip/internal/config"
	"github.com/termtip/termtip/internal/glossary"
)

// loadConfig loads and validates the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadGlossary resolves the configured glossary source. A failed load is
// not fatal: it is logged and an empty dictionary is returned, so the
// pipeline runs inert and pages render without annotations.
func loadGlossary(ctx context.Context, cfg *config.Config) *glossary.Dictionary {
	dict, err := glossary.Load(ctx, cfg.Glossary)
	if err != nil {
		log.Printf("termtip: loading glossary %s: %v (continuing without annotations)", cfg.Glossary, err)
		return glossary.New(nil)
	}
	if verbose {
		fmt.Printf("Loaded %d glossary terms from %s\n", dict.Len(), cfg.Glossary)
	}
	return dict
}
