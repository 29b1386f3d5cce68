package cmd

import (
	"condoadmin/internal/app/admin"

	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Список коллекций",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := admin.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		return app.Printer.Definitions(app.Records.Definitions())
	},
}
