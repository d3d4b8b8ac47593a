package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"brutus/internal/customer/controller"
	"brutus/internal/customer/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.CustomersController {
	repo := repository.NewMySQLCustomerRepository(db)
	return controller.NewCustomersController(repo, logger)
}
