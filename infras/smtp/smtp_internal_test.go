package smtp

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"bms/config"
	otelMocks "bms/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func render(t *testing.T, msg *mail.Msg) string {
	t.Helper()

	var buf bytes.Buffer

	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	return buf.String()
}

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name        string
		to          string
		subject     string
		wantErr     bool
		contains    []string
		notContains []string
	}{
		{
			name:     "plain ascii",
			to:       "dina@example.com",
			subject:  "Reset Password",
			contains: []string{"From: <noreply@bms.local>", "To: <dina@example.com>", "Subject: Reset Password", "text/plain"},
		},
		{
			name:        "non ascii subject is encoded",
			to:          "dina@example.com",
			subject:     "Kode reset kata sandi ✓",
			contains:    []string{"Subject: =?UTF-8?"},
			notContains: []string{"✓"},
		},
		{
			name:        "header injection in subject is neutralised",
			to:          "dina@example.com",
			subject:     "hello\r\nBcc: victim@example.com",
			notContains: []string{"\r\nBcc: victim@example.com"},
		},
		{
			name:    "recipient with injected header",
			to:      "dina@example.com\r\nBcc: victim@example.com",
			subject: "Reset Password",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := BuildMessage("noreply@bms.local", tt.to, tt.subject, "your code is 123456")
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)

			raw := render(t, msg)
			for _, want := range tt.contains {
				assert.Contains(t, raw, want)
			}

			for _, unwanted := range tt.notContains {
				assert.NotContains(t, raw, unwanted)
			}
		})
	}
}

func TestSend(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		send    sendFunc
		wantErr bool
	}{
		{
			name: "delivered",
			host: "localhost",
			send: func(_ context.Context, msg *mail.Msg) error {
				rcpts, err := msg.GetRecipients()
				require.NoError(t, err)
				assert.Equal(t, []string{"<dina@example.com>"}, rcpts)

				return nil
			},
		},
		{
			name: "server rejects",
			host: "localhost",
			send: func(context.Context, *mail.Msg) error {
				return errors.New("550 mailbox unavailable")
			},
			wantErr: true,
		},
		{
			name:    "host missing",
			host:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.SMTP.Host = tt.host
			cfg.SMTP.Port = "1025"
			cfg.SMTP.From = "noreply@bms.local"

			m := &mailerImpl{config: cfg, otel: otelMocks.NewOtel(), send: tt.send}

			err := m.Send(context.Background(), "dina@example.com", "Reset Password", "123456")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSend_RespectsContext(t *testing.T) {
	cfg := &config.Config{}
	cfg.SMTP.Host = "localhost"
	cfg.SMTP.Port = "1025"
	cfg.SMTP.From = "noreply@bms.local"

	m := &mailerImpl{config: cfg, otel: otelMocks.NewOtel()}
	m.send = m.dialAndSend

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, "dina@example.com", "Reset Password", "123456")
	require.Error(t, err)
}

func TestClient(t *testing.T) {
	cfg := &config.Config{}
	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.Port = "not-a-port"

	m := &mailerImpl{config: cfg}

	_, err := m.client()
	require.Error(t, err)

	cfg.SMTP.Port = "2525"
	cfg.SMTP.Username = "bms"
	cfg.SMTP.Password = "secret"

	client, err := m.client()
	require.NoError(t, err)
	assert.NotNil(t, client)

	assert.Equal(t, mail.TLSMandatory, tlsPolicy("mandatory"))
	assert.Equal(t, mail.NoTLS, tlsPolicy("none"))
	assert.Equal(t, mail.TLSOpportunistic, tlsPolicy(""))
}
