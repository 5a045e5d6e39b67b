package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mfreed/larder/internal/adapter"
	"github.com/mfreed/larder/internal/adapter/source"
	"github.com/mfreed/larder/internal/goals"
	"github.com/mfreed/larder/internal/library"
	"github.com/mfreed/larder/internal/search"
	"github.com/mfreed/larder/internal/store"
	"github.com/mfreed/larder/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("larder %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting larder", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	client := source.NewClient(cfg.Server.URL, cfg.Server.Token, logger)

	libStore, err := store.NewLibraryStore(adapter.DefaultCachePath(), cfg.Server.URL)
	if err != nil {
		logger.Warn("cache unavailable, running memory-only", "error", err)
		libStore, err = store.NewLibraryStore("", cfg.Server.URL)
		if err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
	}
	defer libStore.Close()

	librarySvc := library.NewService(client, libStore, cfg.Server.OwnerID, logger)
	librarySvc.SetFetchLimit(cfg.Preferences.FetchLimit)
	librarySvc.SetSort(library.SortModeFromString(cfg.Preferences.DefaultSort))
	goalsSvc := goals.NewService(client, libStore, cfg.Server.OwnerID, logger)
	searchSvc := search.NewService(logger)

	model := tui.NewModel(librarySvc, goalsSvc, searchSvc, cfg.Preferences.ShowCalories, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *adapter.Config) error {
	fmt.Println()
	fmt.Println("Welcome to Larder!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	serverURL, err := promptLine(reader, "Server URL (e.g. https://api.example.com): ")
	if err != nil {
		return err
	}

	ownerID, err := promptLine(reader, "Account ID: ")
	if err != nil {
		return err
	}

	fmt.Print("API token (input hidden): ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(string(tokenBytes))
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	cfg.Server.URL = serverURL
	cfg.Server.OwnerID = ownerID
	cfg.Server.Token = token

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run larder again to start the application.")

	return nil
}

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	for {
		fmt.Print(prompt)
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		value := strings.TrimSpace(input)
		if value != "" {
			return value, nil
		}
		fmt.Println("Value cannot be empty. Please try again.")
	}
}
