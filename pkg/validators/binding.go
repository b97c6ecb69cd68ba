package validators

import (
	"taskhub/collab-api/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RegisterTaskBindings adds the taskstatus and taskpriority binding
// tags to gin's validator engine. Must run before the tasks routes
// serve their first request.
func RegisterTaskBindings() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		zap.L().Warn("Unexpected validator engine, task binding tags not registered")
		return
	}

	v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case model.TaskStatusTodo, model.TaskStatusInProgress, model.TaskStatusDone:
			return true
		}
		return false
	})

	v.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case model.TaskPriorityLow, model.TaskPriorityMedium, model.TaskPriorityHigh:
			return true
		}
		return false
	})
}
