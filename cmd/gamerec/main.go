// Command gamerec is the interactive terminal browser: select a game from
// the catalog and see its most similar entries.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	gamerec "github.com/davrell/gamerec"
	"github.com/davrell/gamerec/images"
	"github.com/davrell/gamerec/internal/config"
	"github.com/davrell/gamerec/internal/filelog"
	"github.com/davrell/gamerec/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gamerec:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := filelog.Init(); err != nil {
		return err
	}
	defer filelog.Close()

	opts, err := cfg.RecommenderOptions()
	if err != nil {
		return err
	}
	rec, err := gamerec.New(opts...)
	if err != nil {
		return err
	}
	defer rec.Close()

	items, err := rec.Items(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	filelog.Info("catalog loaded", "source", cfg.Catalog.Source, "items", len(items))

	resolver := images.NewResolver(cfg.Images.Dir, images.Config{
		Ext:       cfg.Images.Ext,
		PrefixLen: cfg.Images.PrefixLen,
	})

	p := tea.NewProgram(ui.New(rec, resolver, items), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
