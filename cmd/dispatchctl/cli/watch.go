package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dispatch-console/internal/core/logger"
	"dispatch-console/internal/features/dispatch/domain"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the delivery list, redrawn on every refresh",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, search)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Only show customers whose name contains this")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, search string) error {
	a, console, err := session(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.Session.SignOut(context.Background())

	states := make(chan domain.ListState, 1)
	unsubscribe := console.Sync.Subscribe(func(s domain.ListState) {
		// Only the newest state matters to the screen.
		select {
		case <-states:
		default:
		}
		states <- s
	})
	defer unsubscribe()

	out := cmd.OutOrStdout()
	if err := renderDeliveries(out, console.Sync.Snapshot(), search); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-states:
			fmt.Fprint(out, "\033[H\033[2J")
			if err := renderDeliveries(out, s, search); err != nil {
				logger.Get().Warn("Rendering failed", zap.Error(err))
			}
		}
	}
}
