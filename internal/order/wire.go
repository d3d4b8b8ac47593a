package order

import (
	"database/sql"

	"go.uber.org/zap"

	"brutus/internal/order/controller"
	orderrepo "brutus/internal/order/repository"
	"brutus/internal/order/service"
)

func NewModule(db *sql.DB, notifier service.Notifier, logger *zap.Logger) *controller.OrdersController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)

	svc := service.NewOrderService(db, orderRepo, orderItemRepo, notifier, logger)

	return controller.NewOrdersController(svc, logger)
}
