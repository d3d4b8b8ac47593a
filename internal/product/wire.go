package product

import (
	"database/sql"

	"go.uber.org/zap"

	"brutus/internal/product/controller"
	"brutus/internal/product/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ProductsController {
	repo := repository.NewMySQLRepository(db)
	return controller.NewProductsController(repo, logger)
}
