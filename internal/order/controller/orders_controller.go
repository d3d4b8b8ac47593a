package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"brutus/internal/domain"
	apperrors "brutus/internal/errors"
	"brutus/internal/pricing"
)

type OrderService interface {
	Create(ctx context.Context, order domain.Order) (int64, error)
	UpdateStatus(ctx context.Context, id int64, to domain.Status) error
	Remove(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Order, error)
}

type OrdersController struct {
	service  OrderService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewOrdersController(service OrderService, logger *zap.Logger) *OrdersController {
	return &OrdersController{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type customerPayload struct {
	Name         string   `json:"name" validate:"required"`
	Phone        *string  `json:"phone"`
	Address      string   `json:"address" validate:"required"`
	MessagingID  *string  `json:"messagingId"`
	Payment      string   `json:"payment" validate:"required"`
	CashTendered *float64 `json:"cashTendered" validate:"omitempty,gte=0"`
}

type linePayload struct {
	ProductID   int64   `json:"productId" validate:"required,gt=0"`
	ProductName string  `json:"productName" validate:"required"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
	Quantity    int     `json:"qty" validate:"required,min=1,max=99"`
	Note        string  `json:"note"`
}

type deliveryPayload struct {
	DistanceKm float64            `json:"distanceKm" validate:"gte=0"`
	Price      float64            `json:"price" validate:"gte=0"`
	Source     domain.Coordinates `json:"coordinates"`
}

type createOrderRequest struct {
	Customer customerPayload  `json:"customer" validate:"required"`
	Items    []linePayload    `json:"items" validate:"required,min=1,dive"`
	Total    float64          `json:"total" validate:"gte=0"`
	Delivery *deliveryPayload `json:"delivery" validate:"omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (c *OrdersController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateCreateRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		logger.Warn("order rejected", zap.String("reason", ve.Message))
		writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	order := domain.Order{
		CustomerName:  req.Customer.Name,
		CustomerPhone: req.Customer.Phone,
		Address:       req.Customer.Address,
		MessagingID:   req.Customer.MessagingID,
		PaymentMethod: req.Customer.Payment,
		CashTendered:  req.Customer.CashTendered,
		Total:         req.Total,
	}
	if req.Delivery != nil {
		order.Delivery = &domain.DeliverySnapshot{
			DistanceKm: req.Delivery.DistanceKm,
			Fee:        req.Delivery.Price,
			Lat:        req.Delivery.Source.Lat,
			Lng:        req.Delivery.Source.Lng,
		}
	}
	for _, line := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Note:        line.Note,
		})
	}

	orderID, err := c.service.Create(r.Context(), order)
	if err != nil {
		handleServiceError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orderId": orderID,
	}, logger)
}

// validateCreateRequest combines struct-tag validation with the rules
// tags cannot express: the cash-tendered rule (zero means change
// unspecified, anything between zero and the total is rejected).
func (c *OrdersController) validateCreateRequest(req createOrderRequest) error {
	var details []apperrors.ValidationDetail

	if err := c.validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				details = append(details, apperrors.ValidationDetail{
					Field:   fe.Namespace(),
					Message: "failed " + fe.Tag() + " validation",
				})
			}
		} else {
			details = append(details, apperrors.ValidationDetail{
				Field:   "body",
				Message: err.Error(),
			})
		}
	}

	if req.Customer.Payment == domain.PaymentCash && req.Customer.CashTendered != nil {
		if _, err := pricing.Change(*req.Customer.CashTendered, req.Total); err != nil {
			ve, _ := apperrors.IsValidationError(err)
			details = append(details, ve.Details...)
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

type lineResponse struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"qty"`
	UnitPrice   float64 `json:"unitPrice"`
	Note        string  `json:"note,omitempty"`
}

type deliveryResponse struct {
	DistanceKm float64 `json:"distanceKm"`
	Price      float64 `json:"price"`
}

type orderResponse struct {
	ID            int64             `json:"id"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone *string           `json:"customerPhone"`
	Address       string            `json:"address"`
	PaymentMethod string            `json:"paymentMethod"`
	CashTendered  *float64          `json:"cashTendered,omitempty"`
	Total         float64           `json:"total"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	Delivery      *deliveryResponse `json:"delivery,omitempty"`
	Lines         []lineResponse    `json:"lines"`
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err, c.logger)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp := orderResponse{
			ID:            o.ID,
			CustomerName:  o.CustomerName,
			CustomerPhone: o.CustomerPhone,
			Address:       o.Address,
			PaymentMethod: o.PaymentMethod,
			CashTendered:  o.CashTendered,
			Total:         o.Total,
			Status:        string(o.Status),
			CreatedAt:     o.CreatedAt,
			Lines:         make([]lineResponse, 0, len(o.Items)),
		}
		if o.Delivery != nil {
			resp.Delivery = &deliveryResponse{
				DistanceKm: o.Delivery.DistanceKm,
				Price:      o.Delivery.Fee,
			}
		}
		for _, item := range o.Items {
			resp.Lines = append(resp.Lines, lineResponse{
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Note:        item.Note,
			})
		}
		out = append(out, resp)
	}

	writeJSON(w, http.StatusOK, out, c.logger)
}

func (c *OrdersController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := parseOrderID(r)
	if err != nil {
		writeValidationError(w, "invalid order id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "order id must be a positive integer",
		})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.service.UpdateStatus(r.Context(), id, domain.Status(req.Status)); err != nil {
		handleServiceError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true}, logger)
}

func (c *OrdersController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := parseOrderID(r)
	if err != nil {
		writeValidationError(w, "invalid order id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "order id must be a positive integer",
		})
		return
	}

	if err := c.service.Remove(r.Context(), id); err != nil {
		handleServiceError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true}, logger)
}

func parseOrderID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
