package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"bms/config"
	"bms/infras/kafka"
	kafkaMocks "bms/infras/kafka/mocks"
	"bms/infras/otel/mocks"
	smtpMocks "bms/infras/smtp/mocks"
	"bms/internal/domains/notification/service"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotification_Send(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := kafkaMocks.NewMockClient(ctrl)
	mailer := smtpMocks.NewMockMailer(ctrl)

	tests := []struct {
		name        string
		kafkaEnable bool
		setupMock   func()
		wantErr     bool
	}{
		{
			name: "sends directly over smtp",
			setupMock: func() {
				mailer.EXPECT().Send(gomock.Any(), "siti@example.com", "Reset password", "code 123456").Return(nil)
			},
		},
		{
			name: "smtp failure",
			setupMock: func() {
				mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantErr: true,
		},
		{
			name:        "publishes an email event",
			kafkaEnable: true,
			setupMock: func() {
				client.EXPECT().
					SendMessages(gomock.Any(), "bms.email", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						require.Len(t, messages, 1)
						assert.Equal(t, "siti@example.com", messages[0].Key)

						envelope, ok := messages[0].Value.(kafka.Envelope)
						require.True(t, ok)
						assert.Equal(t, service.EventEmailRequested, envelope.EventType)
						assert.Equal(t, "bms", envelope.Producer)

						var payload service.EmailPayload
						require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
						assert.Equal(t, "code 123456", payload.Body)

						return nil
					})
			},
		},
		{
			name:        "publish failure",
			kafkaEnable: true,
			setupMock: func() {
				client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			cfg := &config.Config{}
			cfg.App.Name = "bms"
			cfg.Kafka.Enable = tt.kafkaEnable
			cfg.Kafka.Topics.Email = "bms.email"

			svc := service.New(cfg, client, mailer, mocks.NewOtel())
			err := svc.Send(context.Background(), "Reset password", "code 123456", "siti@example.com")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func envelopeMessage(t *testing.T, eventType string, payload any) kafkaGo.Message {
	t.Helper()

	envelope, err := kafka.NewEnvelope(eventType, "bms", "", payload)
	require.NoError(t, err)

	value, err := json.Marshal(envelope)
	require.NoError(t, err)

	return kafkaGo.Message{Value: value}
}

func TestDispatcher_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)

	mailer := smtpMocks.NewMockMailer(ctrl)
	dispatcher := service.NewDispatcher(mailer, mocks.NewOtel())

	payload := service.EmailPayload{To: "siti@example.com", Subject: "Reset password", Body: "code 123456"}

	tests := []struct {
		name      string
		msg       kafkaGo.Message
		setupMock func()
		wantErr   bool
	}{
		{
			name: "sends the email",
			msg:  envelopeMessage(t, service.EventEmailRequested, payload),
			setupMock: func() {
				mailer.EXPECT().Send(gomock.Any(), payload.To, payload.Subject, payload.Body).Return(nil)
			},
		},
		{
			name: "send failure keeps the offset",
			msg:  envelopeMessage(t, service.EventEmailRequested, payload),
			setupMock: func() {
				mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
			},
			wantErr: true,
		},
		{
			name:      "malformed message is dropped",
			msg:       kafkaGo.Message{Value: []byte("not json")},
			setupMock: func() {},
		},
		{
			name:      "foreign event is dropped",
			msg:       envelopeMessage(t, "booking.created", payload),
			setupMock: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := dispatcher.Handle(context.Background(), tt.msg)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
