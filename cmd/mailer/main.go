package main

import (
	"context"
	"os/signal"
	"syscall"

	"bms/di"
	"bms/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	mailer := di.InitializeMailer()

	logger.InitLogger()

	logger.SetLogLevel(mailer.Config)

	if !mailer.Config.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, the mailer has nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	topic := mailer.Config.Kafka.Topics.Email

	log.Info().Str("topic", topic).Msg("Starting email consumer.")

	if err := mailer.Kafka.Consume(ctx, "", topic, mailer.Dispatcher.Handle); err != nil {
		log.Fatal().Err(err).Msg("Email consumer stopped")
	}

	log.Info().Msg("Email consumer stopped.")
}
