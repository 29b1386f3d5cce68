package user

import (
	"fmt"

	"condoadmin/internal/app/admin"
	"condoadmin/internal/domain/collection"
	"condoadmin/internal/domain/user"

	"github.com/spf13/cobra"
)

var (
	name          string
	email         string
	profileID     string
	passwordStdin bool
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Завести пользователя",
	Long: `Создает пользователя, который сможет войти через POST /api/v1/auth/login.

Пароль запрашивается интерактивно или читается из stdin (--password-stdin).`,
	Example: `  condoctl user add --name "Ana" --email ana@condo.com --profile 1`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := admin.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		password, err := admin.ReadPassword(cmd.InOrStdin(), cmd.OutOrStdout(), passwordStdin, true)
		if err != nil {
			return err
		}

		u, err := app.Users.Register(cmd.Context(), user.Registration{
			Name:      name,
			Email:     email,
			Password:  password,
			ProfileID: profileID,
		})
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		app.Printer.Success("Пользователь %s создан (id %s)", u.Email, u.ID)
		rec, err := app.Records.Get(cmd.Context(), collection.Usuarios, u.ID)
		if err != nil {
			return err
		}
		def, err := app.Records.Definition(collection.Usuarios)
		if err != nil {
			return err
		}
		return app.Printer.Record(def, rec)
	},
}

func init() {
	AddCmd.Flags().StringVar(&name, "name", "", "имя пользователя")
	AddCmd.Flags().StringVar(&email, "email", "", "email для входа")
	AddCmd.Flags().StringVar(&profileID, "profile", "", "ID профиля (perfil)")
	AddCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "читать пароль из stdin")
	_ = AddCmd.MarkFlagRequired("name")
	_ = AddCmd.MarkFlagRequired("email")
}
