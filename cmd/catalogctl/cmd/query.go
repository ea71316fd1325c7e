package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newQueryCmd(opts *options) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "query <text>...",
		Short: "Resolve a query into its product catalog",
		Long:  "Resolve a query the way GET /api/products/ does. Arguments are joined with spaces.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := opts.loadService()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			if explain {
				return writeJSON(cmd.OutOrStdout(), service.Explain(query))
			}

			products, err := service.SearchProducts(cmd.Context(), query)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), products)
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "print the canonical query, working brand and reverse matches too")
	return cmd
}
