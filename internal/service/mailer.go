package service

import (
	"context"
	"encoding/json"
	"fmt"

	"taskhub/collab-api/config"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer consumes the mail queue and does the actual SMTP sends.
// Returning an error from a handler makes asynq retry the task, the
// originating request never sees any of it.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Mux returns the asynq handler mux for the worker process
func (m *Mailer) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeWelcomeEmail, m.HandleWelcomeEmail)
	mux.HandleFunc(TypeVerificationEmail, m.HandleVerificationEmail)
	return mux
}

func (m *Mailer) HandleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome payload, %w", err)
	}

	body := fmt.Sprintf("Welcome %v! Your email %v has been registered.", p.Username, p.Email)

	if err := m.send(p.Email, "Welcome aboard", body); err != nil {
		return err
	}

	zap.L().Info("Welcome email sent", zap.String("email", p.Email))
	return nil
}

func (m *Mailer) HandleVerificationEmail(ctx context.Context, t *asynq.Task) error {
	var p VerificationEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal verification payload, %w", err)
	}

	body := fmt.Sprintf(
		"Hello %v,\n\nPlease use the following code to verify your account: %v\n\nThank you!",
		p.Name, p.Code)

	if err := m.send(p.Email, "Verify your account", body); err != nil {
		return err
	}

	zap.L().Info("Verification email sent", zap.String("email", p.Email))
	return nil
}

func (m *Mailer) send(to, subject, body string) error {
	if to == m.cfg.MailSender {
		return fmt.Errorf("refusing to send mail to the sender address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailSender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.MailHost, m.cfg.MailPort, m.cfg.MailSender, m.cfg.MailPassword)

	return d.DialAndSend(msg)
}
