package stats

import (
	"database/sql"

	"go.uber.org/zap"

	"brutus/internal/stats/controller"
	"brutus/internal/stats/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.StatsController {
	repo := repository.NewMySQLStatsRepository(db)
	return controller.NewStatsController(repo, logger)
}
