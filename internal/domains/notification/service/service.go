package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bms/config"
	"bms/infras/kafka"
	"bms/infras/otel"
	"bms/infras/smtp"
	"bms/shared/constant"

	"github.com/rs/zerolog/log"
)

const EventEmailRequested = "email.requested"

type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notification delivers a message to a recipient. With kafka enabled the message is
// queued for the mailer worker, otherwise it is sent over SMTP directly.
type Notification interface {
	Send(ctx context.Context, subject, body, to string) error
}

type serviceImpl struct {
	cfg    *config.Config
	kafka  kafka.Client
	mailer smtp.Mailer
	otel   otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, mailer smtp.Mailer, otel otel.Otel) Notification {
	return &serviceImpl{
		cfg:    cfg,
		kafka:  kafka,
		mailer: mailer,
		otel:   otel,
	}
}

func (s *serviceImpl) Send(ctx context.Context, subject, body, to string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !s.cfg.Kafka.Enable {
		if err = s.mailer.Send(ctx, to, subject, body); err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}

		return nil
	}

	envelope, err := kafka.NewEnvelope(EventEmailRequested, s.cfg.App.Name, otel.TraceID(ctx), EmailPayload{
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to build email event: %w", err)
	}

	if err = s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Email, kafka.Message{Key: to, Value: envelope}); err != nil {
		log.Error().Err(err).Str("topic", s.cfg.Kafka.Topics.Email).Msg("failed to publish email event")

		return fmt.Errorf("failed to publish email event: %w", err)
	}

	return nil
}
