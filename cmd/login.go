package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BarryMolina/mathsfun-sub001/internal/auth"
	"github.com/BarryMolina/mathsfun-sub001/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google so progress follows you between machines",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		svc, err := auth.NewService(cfg.Google, nil)
		if err != nil {
			if errors.Is(err, auth.ErrNotConfigured) {
				return fmt.Errorf("google sign-in is not configured; set MATHSFUN_GOOGLE_CLIENT_ID and MATHSFUN_GOOGLE_CLIENT_SECRET")
			}
			return err
		}

		fmt.Println("Opening your browser to sign in with Google...")
		id, err := svc.SignIn(cmd.Context())
		if err != nil {
			return fmt.Errorf("sign in: %w", err)
		}
		fmt.Printf("Signed in as %s (%s)\n", id.Name, id.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and go back to the local profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		svc, err := auth.NewService(cfg.Google, nil)
		if err != nil {
			if errors.Is(err, auth.ErrNotConfigured) {
				fmt.Println("Google sign-in is not configured; nothing to do.")
				return nil
			}
			return err
		}
		if err := svc.SignOut(); err != nil {
			return fmt.Errorf("sign out: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}
