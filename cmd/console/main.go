package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shop-admin/cmd/console/ui"
	"shop-admin/internal/auth"
	"shop-admin/internal/config"
	"shop-admin/internal/logger"
	"shop-admin/internal/shop"
	"shop-admin/internal/transport"
)

func main() {
	var (
		cfgPath = flag.String("config", "config/config.yaml", "Path to configuration file")
		baseURL = flag.String("base-url", "", "Override the API base URL (default from config)")
	)
	flag.Parse()

	cfg, err := config.Init(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if err := logger.Init(cfg.LogPath, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	config.Watch(func(c config.AppConfig) {
		logger.SetLevel(c.LogLevel)
		logger.Infof("config reloaded, log level %s", c.LogLevel)
	})

	httpClient := transport.NewClient(cfg.HTTPTimeout)
	authClient, err := auth.New(cfg.BaseURL, auth.Options{HTTPClient: httpClient})
	if err != nil {
		logger.Error("Invalid API base URL:", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	store, closeStore, err := auth.OpenStore(context.Background(), cfg.Token)
	if err != nil {
		logger.Error("Cannot open token store:", err)
		fmt.Fprintf(os.Stderr, "token store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	logger.L.Info().Str("endpoint", authClient.Endpoint()).Str("store", cfg.Token.Store).Msg("console starting")

	root := ui.NewRootModel(ui.Deps{
		Auth:  authClient,
		Store: store,
		NewShop: func(token string) (ui.ShopService, error) {
			return shop.New(cfg.BaseURL, token, shop.Options{HTTPClient: httpClient})
		},
	})
	if _, err := tea.NewProgram(root, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("console exited:", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
