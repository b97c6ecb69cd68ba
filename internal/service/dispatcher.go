// Package service holds the background services of the app: the mail
// queue producer/consumer and the database cleanup tickers
package service

import (
	"encoding/json"

	"taskhub/collab-api/config"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeWelcomeEmail      = "email:welcome"
	TypeVerificationEmail = "email:verification"

	mailQueue = "mail"
)

type WelcomeEmailPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type VerificationEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

// Dispatcher enqueues mail jobs onto the redis-backed task queue.
// Every dispatch is fire-and-forget: enqueue failures are logged and
// never surfaced to the request that triggered them. Delivery is
// at-least-once and unordered, retries happen inside the worker.
type Dispatcher struct {
	client *asynq.Client
}

// NewDispatcher returns a Dispatcher, or a disabled one when no redis
// address is configured. A disabled dispatcher only logs what it
// would have sent, which keeps local development redis-free.
func NewDispatcher(cfg *config.Config) *Dispatcher {
	if cfg.RedisAddr == "" {
		zap.L().Warn("No redis address configured, outgoing mail will only be logged")
		return &Dispatcher{}
	}

	return &Dispatcher{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr}),
	}
}

// DispatchWelcome queues a welcome email for a freshly registered user
func (d *Dispatcher) DispatchWelcome(email, username string) {
	d.enqueue(TypeWelcomeEmail, WelcomeEmailPayload{
		Email:    email,
		Username: username,
	})
}

// DispatchVerification queues a verification-code email
func (d *Dispatcher) DispatchVerification(email, name, code string) {
	d.enqueue(TypeVerificationEmail, VerificationEmailPayload{
		Email: email,
		Name:  name,
		Code:  code,
	})
}

func (d *Dispatcher) Close() error {
	if d.client == nil {
		return nil
	}

	return d.client.Close()
}

func (d *Dispatcher) enqueue(taskType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("Failed to marshal mail payload", zap.Error(err), zap.String("type", taskType))
		return
	}

	if d.client == nil {
		zap.L().Info("Mail dispatch skipped, no queue configured",
			zap.String("type", taskType),
			zap.ByteString("payload", data))
		return
	}

	info, err := d.client.Enqueue(
		asynq.NewTask(taskType, data),
		asynq.Queue(mailQueue),
		asynq.MaxRetry(5),
	)
	if err != nil {
		zap.L().Error("Failed to enqueue mail task", zap.Error(err), zap.String("type", taskType))
		return
	}

	zap.L().Debug("Mail task enqueued",
		zap.String("type", taskType),
		zap.String("task_id", info.ID))
}
