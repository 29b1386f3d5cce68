package record

import (
	"errors"
	"fmt"

	"condoadmin/internal/app/admin"

	"github.com/spf13/cobra"
)

var UpdateCmd = &cobra.Command{
	Use:   "update [collection] [id]",
	Short: "Обновить запись",
	Long:  `Изменяются только переданные поля, остальные сохраняют прежние значения.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, def, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fields, err := admin.ParseFields(rawJSON, assignments)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return errors.New("нечего обновлять: укажите --data или --set")
		}

		rec, err := app.Records.Update(cmd.Context(), def.Name, args[1], fields)
		if err != nil {
			return fmt.Errorf("ошибка обновления записи: %w", err)
		}

		app.Printer.Success("Запись %s #%s обновлена", def.Name, rec.ID())
		return app.Printer.Record(def, rec)
	},
}

func init() {
	addFieldFlags(UpdateCmd)
}
