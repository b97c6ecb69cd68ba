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

	router, err := app.NewTasksRouter(cfg)
	if err != nil {
		panic(err)
	}

	zap.L().Info("Tasks service starting", zap.Int("port", cfg.TasksPort))

	if err := router.Run(fmt.Sprintf(":%d", cfg.TasksPort)); err != nil {
		panic(err)
	}
}
