package internal

import (
	"taskhub/collab-api/config"
	"taskhub/collab-api/internal/service"
	"taskhub/collab-api/pkg/security"

	"gorm.io/gorm"
)

// Deps bundles everything the handlers need. Built once per process
// in the router constructors and threaded through explicitly.
type Deps struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Argon  *security.ArgonHash
	Tokens *security.TokenIssuer
	Mail   *service.Dispatcher
}
