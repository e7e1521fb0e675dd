package service

import (
	"context"
	"fmt"

	"bms/infras/kafka"
	"bms/infras/otel"
	"bms/infras/smtp"
	"bms/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Dispatcher consumes queued email events and hands them to the SMTP mailer.
type Dispatcher struct {
	mailer smtp.Mailer
	otel   otel.Otel
}

func NewDispatcher(mailer smtp.Mailer, otel otel.Otel) *Dispatcher {
	return &Dispatcher{
		mailer: mailer,
		otel:   otel,
	}
}

// Handle sends the email carried by msg. Malformed and foreign events are dropped so they
// are committed; a failed send is returned so the offset stays uncommitted.
func (d *Dispatcher) Handle(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	envelope, payload, decodeErr := kafka.DecodeEnvelope[EmailPayload](msg)
	if decodeErr != nil {
		log.Error().Err(decodeErr).Int64("offset", msg.Offset).Msg("dropping malformed email event")

		return nil
	}

	if envelope.EventType != EventEmailRequested {
		log.Warn().Str("event_type", envelope.EventType).Msg("dropping unexpected event")

		return nil
	}

	scope.SetAttribute("event.id", envelope.EventID)

	if err = d.mailer.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		return fmt.Errorf("failed to send email %s: %w", envelope.EventID, err)
	}

	log.Info().Str("event_id", envelope.EventID).Msg("email sent")

	return nil
}
