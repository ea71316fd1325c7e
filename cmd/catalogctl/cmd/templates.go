package cmd

import (
	"github.com/spf13/cobra"

	"github.com/annai/backend/internal/domain"
)

func newTemplatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "Print the parsed templates of the pool as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := opts.loadService()
			if err != nil {
				return err
			}

			views := []domain.TemplateView{}
			for _, tmpl := range service.Templates() {
				views = append(views, tmpl.View())
			}
			return writeJSON(cmd.OutOrStdout(), views)
		},
	}
}
