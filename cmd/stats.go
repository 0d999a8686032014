package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BarryMolina/mathsfun-sub001/internal/app"
	"github.com/BarryMolina/mathsfun-sub001/internal/auth"
	"github.com/BarryMolina/mathsfun-sub001/internal/config"
	"github.com/BarryMolina/mathsfun-sub001/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics without starting a quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dbPath, err := resolveDBPath(cmd, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		authSvc, _ := auth.NewService(cfg.Google, nil)
		return app.New(st, authSvc, nil, cfg, nil).ShowStats(cmd.Context())
	},
}
