package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/laptops/internal/application"
	"github.com/JonMunkholm/laptops/internal/codec"
	"github.com/JonMunkholm/laptops/internal/config"
	"github.com/JonMunkholm/laptops/internal/core"
	"github.com/JonMunkholm/laptops/internal/logging"
)

func main() {
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to LOG_FILE or nowhere.
	closer, err := logging.SetupFile(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open log file:", err)
		os.Exit(1)
	}
	defer closer.Close()

	codec.Configure(cfg.Catalog)

	service, err := core.NewService(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create service:", err)
		os.Exit(1)
	}

	slog.Info("terminal shell starting", "validation", cfg.Catalog.Validation, "formats", core.Formats())

	if _, err := tea.NewProgram(application.New(service), tea.WithAltScreen()).Run(); err != nil {
		slog.Error("terminal shell stopped", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
