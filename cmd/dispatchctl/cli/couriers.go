package cli

import (
	"github.com/spf13/cobra"
)

func newCouriersCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "couriers",
		Short: "List couriers with their contact and active flag",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, console, err := session(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := console.Roster.EnsureLoaded(cmd.Context()); err != nil {
				return err
			}
			return renderCouriers(cmd.OutOrStdout(), console.Roster.List(search))
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Only show couriers whose name contains this")
	return cmd
}
