// Package app wires configuration, storage, clients, and services into
// the shared application core.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/cryptofolio/internal/clients/binance"
	"github.com/bobmcallan/cryptofolio/internal/clients/gemini"
	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/interfaces"
	"github.com/bobmcallan/cryptofolio/internal/services/holdings"
	"github.com/bobmcallan/cryptofolio/internal/services/query"
	"github.com/bobmcallan/cryptofolio/internal/services/watchlist"
	"github.com/bobmcallan/cryptofolio/internal/storage"
)

// App holds all initialized services and clients. It is the shared core
// behind cmd/cryptofolio-server.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	BinanceClient    interfaces.BinanceClient
	GeminiClient     interfaces.GeminiClient
	HoldingsService  interfaces.HoldingsService
	QueryService     interfaces.QueryService
	WatchlistService interfaces.WatchlistService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty; the default resolution order is then the
// CRYPTOFOLIO_CONFIG env var, cryptofolio.toml next to the binary, and
// config/cryptofolio.toml for development.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("CRYPTOFOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "cryptofolio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/cryptofolio.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to the binary directory so the
	// server is self-contained wherever it is installed.
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	binanceClient := binance.NewClient(
		config.Clients.Binance.APIKey,
		config.Clients.Binance.APISecret,
		binance.WithBaseURL(config.Clients.Binance.BaseURL),
		binance.WithFuturesBaseURL(config.Clients.Binance.FuturesBaseURL),
		binance.WithRateLimit(config.Clients.Binance.RateLimit),
		binance.WithTimeout(config.Clients.Binance.GetTimeout()),
		binance.WithLogger(logger),
	)
	if !binanceClient.HasCredentials() {
		logger.Warn().Msg("Binance credentials not configured - serving demonstration data")
	}

	// The query service runs without a language model when no Gemini
	// key is configured.
	var geminiClient interfaces.GeminiClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client unavailable - queries will use deterministic summaries")
		} else {
			geminiClient = client
		}
	} else {
		logger.Info().Msg("Gemini API key not configured - queries will use deterministic summaries")
	}

	holdingsService := holdings.NewService(binanceClient, storageManager, logger)
	queryService := query.NewService(holdingsService, storageManager, binanceClient, geminiClient, logger)
	watchlistService := watchlist.NewService(storageManager, binanceClient, logger)

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Dur("startup", time.Since(startupStart)).
		Msg("Application initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		BinanceClient:    binanceClient,
		GeminiClient:     geminiClient,
		HoldingsService:  holdingsService,
		QueryService:     queryService,
		WatchlistService: watchlistService,
		StartupTime:      time.Now(),
	}, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
