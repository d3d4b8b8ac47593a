package board

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

// Order is the board's view of an order as served by the API.
type Order struct {
	ID            int64      `json:"id"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone *string    `json:"customerPhone"`
	Address       string     `json:"address"`
	PaymentMethod string     `json:"paymentMethod"`
	CashTendered  *float64   `json:"cashTendered"`
	Total         float64    `json:"total"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	Delivery      *Delivery  `json:"delivery"`
	Lines         []LineItem `json:"lines"`
}

type Delivery struct {
	DistanceKm float64 `json:"distanceKm"`
	Price      float64 `json:"price"`
}

type LineItem struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"qty"`
	UnitPrice   float64 `json:"unitPrice"`
	Note        string  `json:"note"`
}

// Client talks to the order API. Mutations return an error whenever the
// server reports success:false, regardless of the HTTP status code.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/orders", nil)
	if err != nil {
		return nil, apperrors.NewInternalError("building list request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewInternalError("fetching orders", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewInternalError(
			fmt.Sprintf("order API returned status %d", resp.StatusCode), nil)
	}

	var orders []Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, apperrors.NewInternalError("decoding order list", err)
	}

	return orders, nil
}

// Advance moves the order one status forward. The target is computed
// here and sent as an explicit status so the server's one-step rule
// stays the single authority. Delivered orders are left alone.
func (c *Client) Advance(ctx context.Context, order Order) error {
	current := domain.Status(order.Status)
	next := current.Next()
	if next == current || next == domain.StatusArchived {
		return nil
	}
	return c.updateStatus(ctx, order.ID, next)
}

// Regress moves the order one status backward. No-op at pending.
func (c *Client) Regress(ctx context.Context, order Order) error {
	current := domain.Status(order.Status)
	prev := current.Prev()
	if prev == current {
		return nil
	}
	return c.updateStatus(ctx, order.ID, prev)
}

// Archive sends the order to the archived column.
func (c *Client) Archive(ctx context.Context, order Order) error {
	if domain.Status(order.Status) == domain.StatusArchived {
		return nil
	}
	return c.updateStatus(ctx, order.ID, domain.StatusArchived)
}

// Remove permanently deletes the order.
func (c *Client) Remove(ctx context.Context, orderID int64) error {
	url := fmt.Sprintf("%s/api/orders/%d", c.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return apperrors.NewInternalError("building delete request", err)
	}
	return c.doMutation(req)
}

func (c *Client) updateStatus(ctx context.Context, orderID int64, to domain.Status) error {
	body, err := json.Marshal(map[string]string{"status": string(to)})
	if err != nil {
		return apperrors.NewInternalError("encoding status request", err)
	}

	url := fmt.Sprintf("%s/api/orders/%d/status", c.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewInternalError("building status request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doMutation(req)
}

type mutationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) doMutation(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewInternalError("calling order API", err)
	}
	defer resp.Body.Close()

	var out mutationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return apperrors.NewInternalError("decoding order API response", err)
	}

	if !out.Success {
		message := out.Error
		if message == "" {
			message = fmt.Sprintf("order API returned status %d", resp.StatusCode)
		}
		return apperrors.NewInternalError(message, nil)
	}

	return nil
}
