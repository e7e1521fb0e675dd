package smtp

//go:generate go run go.uber.org/mock/mockgen -source=./smtp.go -destination=./mocks/smtp_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bms/config"
	"bms/infras/otel"
	"bms/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

const (
	otelAttrRecipient = "mail.to"

	tlsPolicyMandatory = "mandatory"
	tlsPolicyNone      = "none"
)

var ErrNotConfigured = errors.New("smtp host is not configured")

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sendFunc func(ctx context.Context, msg *mail.Msg) error

type mailerImpl struct {
	config *config.Config
	otel   otel.Otel
	send   sendFunc
}

func New(config *config.Config, otel otel.Otel) Mailer {
	m := &mailerImpl{
		config: config,
		otel:   otel,
	}
	m.send = m.dialAndSend

	return m
}

// Send delivers a plain text message. The dial and the SMTP exchange are bound to ctx.
func (m *mailerImpl) Send(ctx context.Context, to, subject, body string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrRecipient, to)

	if m.config.SMTP.Host == "" {
		return ErrNotConfigured
	}

	msg, err := BuildMessage(m.config.SMTP.From, to, subject, body)
	if err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to build mail")

		return err
	}

	if err = m.send(ctx, msg); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("mail sent")

	return nil
}

// BuildMessage renders a UTF-8 plain text message. Addresses are parsed, and the subject is
// MIME encoded whenever it carries non-ASCII or control characters.
func BuildMessage(from, to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}

func (m *mailerImpl) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := m.client()
	if err != nil {
		return err
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to deliver mail: %w", err)
	}

	return nil
}

func (m *mailerImpl) client() (*mail.Client, error) {
	cfg := m.config.SMTP

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp port %q: %w", cfg.Port, err)
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(tlsPolicy(cfg.TLSPolicy)),
	}

	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, mail.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}

	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return client, nil
}

func tlsPolicy(name string) mail.TLSPolicy {
	switch name {
	case tlsPolicyMandatory:
		return mail.TLSMandatory
	case tlsPolicyNone:
		return mail.NoTLS
	default:
		return mail.TLSOpportunistic
	}
}
