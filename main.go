package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guildbot/internal/adapters/discord"
	"guildbot/internal/adapters/locale"
	"guildbot/internal/adapters/postgres"
	"guildbot/internal/core/domain"
	"guildbot/internal/core/domain/commands"
	"guildbot/internal/core/domain/listeners"
	"guildbot/internal/core/service"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting guildbot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := sql.Open("postgres", viper.GetString("postgres.dsn"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to reach database")
	}

	if err := postgres.CreateSchema(db); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema")
	}

	store := postgres.NewStore(db)
	translator := locale.NewTranslator(viper.GetString("bot.locale_fallback"))

	registry := &domain.Registry{}

	bot, err := discord.New(viper.GetString("discord.bot_token"), registry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing discord session")
	}

	awaiter := service.NewAwaiter()
	polls := service.NewPollService(ctx, store)
	renderer := service.NewRenderer(store, bot, translator)

	setupTimeout := durationSetting("poll.setup_timeout", 24*time.Hour)
	pollCommand := commands.NewPollCommand(ctx, polls, renderer, bot, translator, awaiter, setupTimeout)

	cooldown := service.NewCooldown(ctx,
		durationSetting("chat.reply_cooldown", 5*time.Second),
		durationSetting("chat.cache_sweep_interval", time.Hour))

	registrations := []error{
		registry.RegisterCommand(commands.Ping(translator)),
		registry.RegisterCommand(commands.Help(registry, translator)),
		registry.RegisterCommand(commands.Language(store, translator)),
		registry.RegisterCommand(pollCommand.Command()),
		registry.RegisterListener(pollCommand.ComponentListener()),
		registry.RegisterListener(pollCommand.ModalListener()),
		registry.RegisterListener(listeners.Love(cooldown, bot, translator)),
		registry.RegisterListener(listeners.VoiceJoin(bot, translator)),
	}
	for _, err := range registrations {
		if err != nil {
			log.Fatal().Err(err).Msg("failed to register descriptor")
		}
	}

	dispatcher := service.NewDispatcher(registry, bot, store, awaiter, translator,
		viper.GetString("bot.locale_fallback"), durationSetting("handler.timeout", time.Minute))

	if err := bot.Start(ctx, dispatcher, viper.GetString("discord.activity")); err != nil {
		log.Fatal().Err(err).Msg("failed to start bot")
	}

	log.Info().Msg("bot listening")

	<-ctx.Done()

	log.Info().Msg("shutting down")
	if err := bot.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close gateway session")
	}
}

func durationSetting(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatal().Err(err).Str("setting", key).Msg("invalid duration in config")
	}

	return d
}
