package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/exprtable/internal/config"
	"github.com/jask/exprtable/internal/database"
	"github.com/jask/exprtable/internal/database/repository"
	"github.com/jask/exprtable/internal/prefs"
	"github.com/jask/exprtable/internal/service"
	"github.com/jask/exprtable/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// the TUI owns the terminal, so log lines go to a file
	if cfg.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
			log.Fatalf("mkdir log dir: %v", err)
		}
		f, err := tea.LogToFile(cfg.Log.Path, "exprtable")
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if cfg.Store.Seed {
		if err := database.SeedDefaults(ctx, db, cfg.Store.ID); err != nil {
			log.Fatalf("seed defaults: %v", err)
		}
	}

	labels, err := prefs.LoadLabels(cfg.UI.LabelsPath)
	if err != nil {
		log.Printf("warn: using default labels: %v", err)
		labels = prefs.DefaultLabels()
	}

	store := &service.ExpressionService{
		Expressions: repository.NewExpressionRepo(db),
		StoreID:     cfg.Store.ID,
	}

	p := tea.NewProgram(tui.New(ctx, cfg, store, labels), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
