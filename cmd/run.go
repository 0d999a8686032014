package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BarryMolina/mathsfun-sub001/internal/app"
	"github.com/BarryMolina/mathsfun-sub001/internal/auth"
	"github.com/BarryMolina/mathsfun-sub001/internal/chatter"
	"github.com/BarryMolina/mathsfun-sub001/internal/config"
	"github.com/BarryMolina/mathsfun-sub001/internal/logger"
	"github.com/BarryMolina/mathsfun-sub001/internal/store"
)

// runApp loads config, opens the store, builds dependencies, and hands
// off to the interactive shell.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Initialize(logger.DefaultLogPath(), cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "logging unavailable:", err)
	}
	defer logger.Sync()
	log := logger.Get()

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	authSvc, err := auth.NewService(cfg.Google, log)
	if err != nil && !errors.Is(err, auth.ErrNotConfigured) {
		return fmt.Errorf("set up sign-in: %w", err)
	}

	chat := chatter.New(cfg.Chatter, log)
	if chat == nil {
		log.Debug("chatter disabled", zap.String("reason", "no API key"))
	}

	return app.New(st, authSvc, chat, cfg, log).Run(cmd.Context())
}
