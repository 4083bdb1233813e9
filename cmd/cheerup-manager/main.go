package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/TheShooter89/cheer-up-bot/internal/apiclient"
	"github.com/TheShooter89/cheer-up-bot/internal/auth"
	"github.com/TheShooter89/cheer-up-bot/internal/botui"
	"github.com/TheShooter89/cheer-up-bot/internal/config"
	"github.com/TheShooter89/cheer-up-bot/internal/logging"
	"github.com/TheShooter89/cheer-up-bot/internal/managerbot"
	"github.com/TheShooter89/cheer-up-bot/internal/vnotes"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "cheerup-manager",
		Short: "CheerUp maintenance Telegram bot",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context())
		},
	}

	setupFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("bot-token", "", "Telegram bot token (overrides env)")
	cmd.PersistentFlags().String("api-base-url", defaults.GetString("api.base_url"), "CheerUp API base URL")
	cmd.PersistentFlags().String("storage-root", defaults.GetString("storage.root"), "Video note storage root")
	cmd.PersistentFlags().String("default-locale", defaults.GetString("locale.default"), "Fallback locale")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("signing-secret", "", "Service token signing secret (overrides env)")

	bindFlag(cmd, "bot.token", "bot-token")
	bindFlag(cmd, "api.base_url", "api-base-url")
	bindFlag(cmd, "storage.root", "storage-root")
	bindFlag(cmd, "locale.default", "default-locale")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "auth.signing_secret", "signing-secret")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

func runBot(ctx context.Context) error {
	appConfig, err := config.LoadBot(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	telegram, err := tgbotapi.NewBotAPI(appConfig.BotToken)
	if err != nil {
		return err
	}

	serviceTokens := auth.NewServiceTokens(auth.ServiceTokensConfig{
		SigningSecret: []byte(appConfig.SigningSecret),
	})

	api, err := apiclient.New(apiclient.Config{
		BaseURL:     appConfig.APIBaseURL,
		ServiceName: "cheerup-manager",
		Tokens:      serviceTokens,
	})
	if err != nil {
		return err
	}

	store, err := vnotes.NewStore(vnotes.StoreConfig{
		Root:     appConfig.StorageRoot,
		BotToken: appConfig.BotToken,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	sessions, err := botui.NewSessions(0)
	if err != nil {
		return err
	}

	bot, err := managerbot.New(telegram, managerbot.Config{
		API:           api,
		Store:         store,
		Sessions:      sessions,
		DefaultLocale: appConfig.DefaultLocale,
		Credits:       appConfig.Credits,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("bot starting", zap.String("username", telegram.Self.UserName))
	if err := bot.Run(signalCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
