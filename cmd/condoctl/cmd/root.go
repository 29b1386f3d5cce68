package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"condoadmin/cmd/condoctl/cmd/record"
	"condoadmin/cmd/condoctl/cmd/user"
	"condoadmin/internal/app/admin"
	"condoadmin/internal/app/client"
	"condoadmin/internal/config"
	"condoadmin/internal/utils/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	dataFile   string
	backend    string
	format     string
	jsonOutput bool
	debug      bool
	serverURL  string
	token      string
	tokenFile  string
	app        *admin.App
)

// skipConnect marks commands that run against a server before a token exists.
const skipConnect = "skip-connect"

var rootCmd = &cobra.Command{
	Use:   "condoctl",
	Short: "condoctl - администрирование данных кондоминиума",
	Long: `condoctl работает с хранилищем сервиса напрямую или, с флагом --server,
через REST API запущенного сервера: просмотр, создание, изменение и
удаление записей коллекций (usuarios, perfil, boletos, salesData,
movimentacoes) и заведение пользователей.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	level := "warn"
	if debug {
		level = "debug"
	}
	log := logger.NewWithLevel(cfg.Env, level)

	if jsonOutput {
		format = admin.FormatJSON
	}
	printer, err := admin.NewPrinter(cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}

	remote := serverURL
	if remote == "" {
		remote = os.Getenv("CONDO_SERVER")
	}

	if remote != "" {
		var tok string
		if tok, err = resolveToken(); err != nil {
			return err
		}
		connect := cmd.Annotations[skipConnect] == ""
		app, err = admin.NewRemote(cmd.Context(), remote, tok, connect, printer, log)
	} else {
		app, err = admin.NewLocal(cmd.Context(), cfg, printer, log)
	}
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(admin.WithApp(cmd.Context(), app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

// resolveToken picks --token, then CONDO_TOKEN, then the token saved by login.
func resolveToken() (string, error) {
	if token != "" {
		return token, nil
	}
	if env := os.Getenv("CONDO_TOKEN"); env != "" {
		return env, nil
	}
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	return client.LoadToken(path)
}

func tokenPath() (string, error) {
	if tokenFile != "" {
		return tokenFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("не удалось определить домашнюю директорию: %w", err)
	}
	return filepath.Join(home, ".condoadmin", "token"), nil
}

func loadConfig() (*config.Config, error) {
	v := viper.New()
	config.Defaults(v)
	// condoctl never issues tokens, so a throwaway secret satisfies validation
	v.SetDefault("auth_secret", uuid.NewString())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".condoadmin"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("condoctl")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if dataFile != "" {
		v.Set("store_path", dataFile)
	}
	if backend != "" {
		v.Set("store_backend", backend)
	}

	return config.FromViper(v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "store", "", "путь к файлу данных (STORE_PATH)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "хранилище: json, memory, sqlite, postgres")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", admin.FormatTable, "формат вывода (simple, table, json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера (CONDO_SERVER); без него работа идет с хранилищем")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "токен доступа (CONDO_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "файл токена (по умолчанию ~/.condoadmin/token)")

	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(record.ListCmd, record.GetCmd, record.CreateCmd, record.UpdateCmd, record.DeleteCmd)
	rootCmd.AddCommand(user.UserCmd)
	rootCmd.AddCommand(loginCmd)
}
