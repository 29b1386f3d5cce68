package record

import (
	"fmt"

	"condoadmin/internal/domain/collection"

	"github.com/spf13/cobra"
)

var (
	search   string
	filters  map[string]string
	page     int
	pageSize int
)

var ListCmd = &cobra.Command{
	Use:   "list [collection]",
	Short: "Список записей коллекции",
	Long: `Просмотр записей коллекции с поиском и пагинацией.

Поиск (--search) без учета регистра по текстовым полям коллекции,
точные фильтры задаются через --filter mes=03 --filter ano=2024.`,
	Example: `  condoctl list boletos --search pendente
  condoctl list movimentacoes --filter mes=05 --filter ano=2024 --page 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, def, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		result, err := app.Records.List(cmd.Context(), def.Name, collection.Query{
			Search:   search,
			Filters:  filters,
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return fmt.Errorf("ошибка получения списка записей: %w", err)
		}
		return app.Printer.Page(def, result)
	},
}

func init() {
	ListCmd.Flags().StringVarP(&search, "search", "s", "", "поиск по текстовым полям")
	ListCmd.Flags().StringToStringVar(&filters, "filter", nil, "точный фильтр поле=значение")
	ListCmd.Flags().IntVarP(&page, "page", "p", collection.DefaultPage, "номер страницы")
	ListCmd.Flags().IntVarP(&pageSize, "page-size", "n", collection.DefaultPageSize, "записей на странице")
}
