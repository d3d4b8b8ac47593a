package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"brutus/internal/domain"
	apperrors "brutus/internal/errors"
)

type CustomerRepository interface {
	FindByMessagingID(ctx context.Context, messagingID string) (*domain.Customer, error)
	Upsert(ctx context.Context, c domain.Customer) error
}

type CustomersController struct {
	repo     CustomerRepository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCustomersController(repo CustomerRepository, logger *zap.Logger) *CustomersController {
	return &CustomersController{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

type customerResponse struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type upsertCustomerRequest struct {
	MessagingID string  `json:"messagingId" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

// Lookup resolves a returning customer by messaging id so the bot can
// skip re-asking name and address. An unknown id is not an error for
// the caller, it just means a first-time customer.
func (c *CustomersController) Lookup(w http.ResponseWriter, r *http.Request) {
	messagingID := chi.URLParam(r, "messagingID")

	customer, err := c.repo.FindByMessagingID(r.Context(), messagingID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusOK, map[string]interface{}{"success": false})
			return
		}
		c.logger.Error("failed to look up customer", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"customer": customerResponse{
			Name:    customer.Name,
			Phone:   customer.Phone,
			Address: customer.Address,
		},
	})
}

// Save upserts the customer profile keyed by messaging id.
func (c *CustomersController) Save(w http.ResponseWriter, r *http.Request) {
	var req upsertCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "request body must be valid JSON",
		})
		return
	}

	if err := c.validate.Struct(req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "messagingId and name are required",
		})
		return
	}

	err := c.repo.Upsert(r.Context(), domain.Customer{
		MessagingID: req.MessagingID,
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		c.logger.Error("failed to save customer", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (c *CustomersController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
