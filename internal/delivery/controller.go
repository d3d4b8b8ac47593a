package delivery

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"brutus/internal/domain"
	apperrors "brutus/internal/errors"
)

type Quoter interface {
	RequestQuote(ctx context.Context, coords domain.Coordinates) (*domain.DeliveryQuote, error)
}

// Controller proxies quote requests from the storefront to the quoting
// collaborator, flattening the result into the shape the frontend
// expects.
type Controller struct {
	quoter Quoter
	logger *zap.Logger
}

func NewController(quoter Quoter, logger *zap.Logger) *Controller {
	return &Controller{quoter: quoter, logger: logger}
}

type quoteRequestBody struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type quoteResponseBody struct {
	Success  bool     `json:"success"`
	Distance *float64 `json:"distance,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Address  string   `json:"address,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (c *Controller) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Latitude == nil || req.Longitude == nil {
		c.writeJSON(w, http.StatusBadRequest, quoteResponseBody{
			Success: false,
			Error:   "Coordenadas não fornecidas",
		})
		return
	}

	quote, err := c.quoter.RequestQuote(r.Context(), domain.Coordinates{
		Lat: *req.Latitude,
		Lng: *req.Longitude,
	})
	if err != nil {
		if qe, ok := apperrors.IsQuoteError(err); ok {
			// The storefront keys off the error field, not the success
			// flag; a quoted refusal still travels as a successful call.
			c.writeJSON(w, http.StatusOK, quoteResponseBody{
				Success: true,
				Error:   qe.Reason,
			})
			return
		}

		c.logger.Error("delivery quote failed", zap.Error(err))
		c.writeJSON(w, http.StatusBadGateway, quoteResponseBody{
			Success: false,
			Error:   "Erro ao calcular valor da entrega",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, quoteResponseBody{
		Success:  true,
		Distance: &quote.DistanceKm,
		Price:    &quote.Price,
		Address:  quote.ResolvedAddress,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
