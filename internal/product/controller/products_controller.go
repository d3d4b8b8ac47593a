package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"brutus/internal/domain"
)

type ProductLister interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type ProductsController struct {
	repo   ProductLister
	logger *zap.Logger
}

func NewProductsController(repo ProductLister, logger *zap.Logger) *ProductsController {
	return &ProductsController{repo: repo, logger: logger}
}

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageRef    *string `json:"imageRef"`
}

// List returns the full catalog as a bare array so the storefront can
// render the menu in one request.
func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.repo.FindAll(r.Context())
	if err != nil {
		c.logger.Error("failed to list products", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "an unexpected error occurred",
		})
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			ImageRef:    p.ImageRef,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(out); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
