package main

import (
	"taskhub/collab-api/config"
	"taskhub/collab-api/internal/service"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := config.SetupLogger(cfg.LogLevel); err != nil {
		panic(err)
	}

	if cfg.RedisAddr == "" {
		panic("redis.addr is required for the mail worker")
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"mail": 1,
			},
		},
	)

	zap.L().Info("Mail worker starting", zap.String("redis", cfg.RedisAddr))

	if err := srv.Run(service.NewMailer(cfg).Mux()); err != nil {
		panic(err)
	}
}
