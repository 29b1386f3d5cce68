package cmd

import (
	"fmt"

	"condoadmin/internal/app/admin"
	"condoadmin/internal/app/client"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPwdStdin bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти на сервер и сохранить токен",
	Long: `Получает токен через POST /api/v1/auth/login и сохраняет его в
--token-file. Последующие команды с --server используют этот токен.`,
	Example:     `  condoctl login --server localhost:8080 --email sindico@condo.com`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConnect: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := admin.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		if app.Remote == nil {
			return admin.ErrNotRemote
		}

		password, err := admin.ReadPassword(cmd.InOrStdin(), cmd.OutOrStdout(), loginPwdStdin, false)
		if err != nil {
			return err
		}

		u, err := app.Remote.Authenticate(cmd.Context(), loginEmail, password)
		if err != nil {
			return fmt.Errorf("ошибка входа: %w", err)
		}

		path, err := tokenPath()
		if err != nil {
			return err
		}
		if err := client.SaveToken(path, app.Remote.Token()); err != nil {
			return err
		}

		app.Printer.Success("Вход выполнен: %s (токен сохранен в %s)", u.Email, path)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email пользователя")
	loginCmd.Flags().BoolVar(&loginPwdStdin, "password-stdin", false, "читать пароль из stdin")
	_ = loginCmd.MarkFlagRequired("email")
}
