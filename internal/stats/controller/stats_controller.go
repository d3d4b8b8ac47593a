package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"brutus/internal/stats/repository"
)

type StatsRepository interface {
	TopProducts(ctx context.Context) ([]repository.TopProduct, error)
	TopCustomers(ctx context.Context) ([]repository.TopCustomer, error)
	DeliveryTotals(ctx context.Context) (*repository.DeliveryTotals, error)
	GeneralTotals(ctx context.Context) (*repository.GeneralTotals, error)
}

type StatsController struct {
	repo   StatsRepository
	logger *zap.Logger
}

func NewStatsController(repo StatsRepository, logger *zap.Logger) *StatsController {
	return &StatsController{repo: repo, logger: logger}
}

func (c *StatsController) TopProducts(w http.ResponseWriter, r *http.Request) {
	out, err := c.repo.TopProducts(r.Context())
	if err != nil {
		c.writeError(w, "failed to load top products", err)
		return
	}
	if out == nil {
		out = []repository.TopProduct{}
	}
	c.writeJSON(w, out)
}

func (c *StatsController) TopCustomers(w http.ResponseWriter, r *http.Request) {
	out, err := c.repo.TopCustomers(r.Context())
	if err != nil {
		c.writeError(w, "failed to load top customers", err)
		return
	}
	if out == nil {
		out = []repository.TopCustomer{}
	}
	c.writeJSON(w, out)
}

func (c *StatsController) Delivery(w http.ResponseWriter, r *http.Request) {
	out, err := c.repo.DeliveryTotals(r.Context())
	if err != nil {
		c.writeError(w, "failed to load delivery totals", err)
		return
	}
	c.writeJSON(w, out)
}

func (c *StatsController) General(w http.ResponseWriter, r *http.Request) {
	out, err := c.repo.GeneralTotals(r.Context())
	if err != nil {
		c.writeError(w, "failed to load general totals", err)
		return
	}
	c.writeJSON(w, out)
}

func (c *StatsController) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (c *StatsController) writeError(w http.ResponseWriter, message string, err error) {
	c.logger.Error(message, zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   "an unexpected error occurred",
	})
}
