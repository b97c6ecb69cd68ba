package main

import (
	"fmt"

	"taskhub/collab-api/app"
	"taskhub/collab-api/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := config.SetupLogger(cfg.LogLevel); err != nil {
		panic(err)
	}

	router, err := app.NewUsersRouter(cfg)
	if err != nil {
		panic(err)
	}

	zap.L().Info("Users service starting", zap.Int("port", cfg.UsersPort))

	if err := router.Run(fmt.Sprintf(":%d", cfg.UsersPort)); err != nil {
		panic(err)
	}
}
