package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"placegrip/internal/config"
	"placegrip/internal/eventbus"
	"placegrip/internal/results"
	"placegrip/internal/search"
	"placegrip/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		targetDir  string
		placesFile string
		expansion  string
		minRating  float64
	)
	flag.StringVar(&targetDir, "dir", "", "Directory holding .placegrip.toml")
	flag.StringVar(&targetDir, "d", "", "Directory holding .placegrip.toml (shorthand)")
	flag.StringVar(&placesFile, "places", "", "TOML file with places (overrides config)")
	flag.StringVar(&expansion, "expansion", "", "Initial panel level: collapsed, mid or full")
	flag.Float64Var(&minRating, "min-rating", -1, "Minimum rating to record as the filter")
	flag.Parse()

	// If no directory specified, check for remaining args
	if targetDir == "" && flag.NArg() > 0 {
		targetDir = flag.Arg(0)
	}

	// If still no directory, use current directory
	if targetDir == "" {
		var err error
		targetDir, err = os.Getwd()
		if err != nil {
			fmt.Printf("Error getting current directory: %v\n", err)
			os.Exit(1)
		}
	}

	// Resolve to absolute path
	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		fmt.Printf("Error resolving path: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logFile, err := os.OpenFile("placegrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("Config loaded from %s", event.Path)
		}
	})

	configSvc := config.NewConfigServiceWithBus(absDir, bus)
	cfg, err := loadOrCreateConfig(configSvc, absDir)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Command line flags win over the file
	if placesFile != "" {
		cfg.PlacesFile = placesFile
	}
	if expansion != "" {
		cfg.InitialExpansion = expansion
	}
	if minRating >= 0 {
		cfg.RatingFilter = &minRating
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	store := search.NewStore(search.State{TitleNoun: cfg.TitleNoun})
	store.SetQuery(cfg.Query, cfg.LocationLabel)
	store.SetRatingFilter(cfg.RatingFilter)

	source := newSource(cfg, absDir)
	log.Printf("Using result source %s", source.Name())

	uiModel := ui.NewModel(ctx, ui.Options{
		Config:  cfg,
		Bus:     bus,
		Store:   store,
		Results: results.NewService(store, bus),
		Source:  source,
	})
	defer uiModel.Close()

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// loadOrCreateConfig loads the config from dir, writing the defaults there
// when no file exists yet. A file that exists but does not parse is an error
// so the user's file is never overwritten.
func loadOrCreateConfig(configSvc config.ConfigService, dir string) (*config.Config, error) {
	configPath := filepath.Join(dir, config.FileName)

	if _, err := os.Stat(configPath); err == nil {
		return configSvc.LoadFromPath(configPath)
	}

	cfg, err := configSvc.Load()
	if err != nil {
		return nil, err
	}
	log.Printf("Creating new config at %s", configPath)
	if err := configSvc.SaveToPath(cfg, configPath); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg, nil
}

// newSource picks the places file from the config, or the built-in sample
func newSource(cfg *config.Config, dir string) results.Source {
	if cfg.PlacesFile == "" {
		return results.SampleSource{}
	}
	path := cfg.PlacesFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return results.NewFileSource(path)
}
