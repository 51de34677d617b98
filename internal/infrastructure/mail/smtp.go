package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"next-hire/internal/config"
	"next-hire/internal/domain/notification"
	"next-hire/internal/pkg/logger"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("smtp not configured")

type SMTPSender struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, l *zap.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger.OrNop(l)}
}

func (s *SMTPSender) Send(ctx context.Context, msg notification.Email) error {
	if strings.TrimSpace(s.cfg.Host) == "" {
		return ErrNotConfigured
	}

	m, err := buildMessage(s.cfg.From, msg)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("smtp send failed", zap.String("to", msg.To), zap.Error(err))
		return fmt.Errorf("smtp send: %w", err)
	}
	s.logger.Debug("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func buildMessage(from string, msg notification.Email) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}

// LogSender writes messages to the log instead of delivering them. Used when
// SMTP_HOST is empty in development.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(l *zap.Logger) *LogSender {
	return &LogSender{logger: logger.OrNop(l)}
}

func (s *LogSender) Send(_ context.Context, msg notification.Email) error {
	s.logger.Info("email (not delivered)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}
