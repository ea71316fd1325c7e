package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/annai/backend/internal/usecase"
)

func newSelectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "select <brand>",
		Short: "List the templates selected for a brand, in selection order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := opts.loadService()
			if err != nil {
				return err
			}

			display := usecase.DisplayBrand(args[0])
			for _, tmpl := range service.Select(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", tmpl.File, usecase.Render(tmpl.Label, display))
			}
			return nil
		},
	}
}
