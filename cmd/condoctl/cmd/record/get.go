package record

import (
	"fmt"

	"github.com/spf13/cobra"
)

var GetCmd = &cobra.Command{
	Use:   "get [collection] [id]",
	Short: "Просмотреть запись",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, def, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		rec, err := app.Records.Get(cmd.Context(), def.Name, args[1])
		if err != nil {
			return fmt.Errorf("ошибка получения записи: %w", err)
		}
		return app.Printer.Record(def, rec)
	},
}
