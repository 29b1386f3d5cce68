package record

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var force bool

var DeleteCmd = &cobra.Command{
	Use:   "delete [collection] [id]",
	Short: "Удалить запись",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, def, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !force {
			fmt.Fprintf(cmd.OutOrStdout(), "Удалить %s #%s? [y/N]: ", def.Name, args[1])
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Отменено")
				return nil
			}
		}

		if err := app.Records.Delete(cmd.Context(), def.Name, args[1]); err != nil {
			return fmt.Errorf("ошибка удаления записи: %w", err)
		}

		app.Printer.Success("Запись %s #%s удалена", def.Name, args[1])
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&force, "yes", "y", false, "удалить без подтверждения")
}
