package app

import (
	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/middleware"
)

func wireMiddleware(log *logger.Logger, cfg Config, s Services) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(log, s.Auth, cfg.AdminUserIDs)
}
