package record

import (
	"fmt"

	"condoadmin/internal/app/admin"

	"github.com/spf13/cobra"
)

var (
	rawJSON     string
	assignments []string
)

var CreateCmd = &cobra.Command{
	Use:   "create [collection]",
	Short: "Создать запись",
	Long: `Создание записи. Поля задаются JSON-объектом (--data) и/или
парами --set поле=значение; числа и true/false сохраняют тип.`,
	Example: `  condoctl create perfil --set description=Síndico
  condoctl create boletos --data '{"unidadeId":"101","valor":350,"vencimento":"2024-05-10","status":"Pendente"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, def, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fields, err := admin.ParseFields(rawJSON, assignments)
		if err != nil {
			return err
		}

		rec, err := app.Records.Create(cmd.Context(), def.Name, fields)
		if err != nil {
			return fmt.Errorf("ошибка создания записи: %w", err)
		}

		app.Printer.Success("Запись %s #%s создана", def.Name, rec.ID())
		return app.Printer.Record(def, rec)
	},
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rawJSON, "data", "d", "", "поля записи в виде JSON-объекта")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "поле=значение (можно повторять)")
}

func init() {
	addFieldFlags(CreateCmd)
}
