package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	customerctrl "brutus/internal/customer/controller"
	"brutus/internal/delivery"
	orderctrl "brutus/internal/order/controller"
	productctrl "brutus/internal/product/controller"
	statsctrl "brutus/internal/stats/controller"
)

func NewRouter(
	products *productctrl.ProductsController,
	orders *orderctrl.OrdersController,
	quotes *delivery.Controller,
	customers *customerctrl.CustomersController,
	stats *statsctrl.StatsController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", products.List)
		r.Post("/delivery/quote", quotes.Quote)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orders.Create)
			r.Get("/", orders.List)
			r.Put("/{id}/status", orders.UpdateStatus)
			r.Delete("/{id}", orders.Delete)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/{messagingID}", customers.Lookup)
			r.Post("/", customers.Save)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/top-products", stats.TopProducts)
			r.Get("/top-customers", stats.TopCustomers)
			r.Get("/delivery", stats.Delivery)
			r.Get("/general", stats.General)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
