package user

import (
	"github.com/spf13/cobra"
)

// UserCmd - родительская команда для операций с пользователями
var UserCmd = &cobra.Command{
	Use:   "user",
	Short: "Управление пользователями",
}

func init() {
	UserCmd.AddCommand(AddCmd)
}
