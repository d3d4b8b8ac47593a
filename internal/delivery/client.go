package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"brutus/internal/domain"
	apperrors "brutus/internal/errors"
)

// Client wraps the external delivery quoting collaborator. It only
// shapes requests and interprets responses; pricing and radius rules
// live on the other side.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(quoteURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: quoteURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type quoteRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type quoteResponse struct {
	Success  bool     `json:"success"`
	Distance *float64 `json:"distance"`
	Price    *float64 `json:"price"`
	Address  string   `json:"address"`
	Error    string   `json:"error"`
}

// RequestQuote asks the quoting collaborator for a delivery price.
// A payload with success=false, or success=true carrying an error
// string (the out-of-radius case), is a QuoteError: both route to the
// same customer-facing message. Transport problems come back as
// InternalError and are retriable manually; there is no automatic
// retry.
func (c *Client) RequestQuote(ctx context.Context, coords domain.Coordinates) (*domain.DeliveryQuote, error) {
	body, err := json.Marshal(quoteRequest{Latitude: coords.Lat, Longitude: coords.Lng})
	if err != nil {
		return nil, apperrors.NewInternalError("encoding quote request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("building quote request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("delivery quote request failed", zap.Error(err))
		return nil, apperrors.NewInternalError("delivery service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("delivery quote returned unexpected status", zap.Int("status", resp.StatusCode))
		return nil, apperrors.NewInternalError(fmt.Sprintf("delivery service returned status %d", resp.StatusCode), nil)
	}

	var qr quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, apperrors.NewInternalError("decoding quote response", err)
	}

	// success=true with an embedded error string is still a quoting
	// failure, not a transport failure.
	if !qr.Success || qr.Error != "" {
		reason := qr.Error
		if reason == "" {
			reason = "delivery quote unavailable"
		}
		return nil, apperrors.NewQuoteError(reason)
	}

	if qr.Distance == nil || qr.Price == nil || *qr.Distance < 0 || *qr.Price < 0 {
		return nil, apperrors.NewInternalError("malformed quote response", nil)
	}

	return &domain.DeliveryQuote{
		DistanceKm:      *qr.Distance,
		Price:           *qr.Price,
		ResolvedAddress: qr.Address,
		Source:          coords,
	}, nil
}
