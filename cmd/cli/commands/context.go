package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/internal/config"
	"github.com/jakechorley/smart-schedule/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands.
// DB is nil for commands that run without a database.
type AppContext struct {
	Cfg    *config.Config
	DB     *postgres.DB
	Logger *zap.Logger
	Ctx    context.Context
}

// OfflineAnnotation marks commands that must not open a database connection
const OfflineAnnotation = "offline"

// IsOffline reports whether cmd is marked with OfflineAnnotation
func IsOffline(annotations map[string]string) bool {
	return annotations[OfflineAnnotation] == "true"
}
