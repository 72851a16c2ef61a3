// Package cli holds the dispatchctl commands.
package cli

import (
	"context"
	"fmt"
	"log"

	"dispatch-console/internal/app"
	"dispatch-console/internal/core/config"
	"dispatch-console/internal/core/logger"
	"dispatch-console/internal/features/dispatch/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

// NewRootCmd creates the dispatchctl root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dispatchctl",
		Short:        "Terminal dispatch console",
		Long:         "dispatchctl signs in to the delivery platform and shows the live delivery list and courier roster.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", ".", "Directory holding the .env file")
	root.PersistentFlags().String("email", "", "Staff email (DISPATCH_EMAIL)")
	root.PersistentFlags().String("password", "", "Staff password (DISPATCH_PASSWORD)")
	for _, name := range []string{"config", "email", "password"} {
		if err := viper.BindPFlag(name, root.PersistentFlags().Lookup(name)); err != nil {
			log.Fatalf("Failed to bind %s flag: %v", name, err)
		}
	}
	_ = viper.BindEnv("email", "DISPATCH_EMAIL")
	_ = viper.BindEnv("password", "DISPATCH_PASSWORD")

	root.AddCommand(newWatchCmd())
	root.AddCommand(newCouriersCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dispatchctl %s\n", Version)
		},
	}
}

// session loads configuration, wires the application and signs in. The caller
// closes the returned App.
func session(ctx context.Context) (*app.App, *service.Console, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if _, err := a.Session.SignIn(ctx, viper.GetString("email"), viper.GetString("password")); err != nil {
		a.Close()
		return nil, nil, err
	}
	console, err := a.Consoles.Current()
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return a, console, nil
}
