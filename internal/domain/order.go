package domain

import "time"

// Order is the persisted checkout result. Customer fields and item
// prices are captured at order time and never edited afterwards; later
// catalog changes do not touch existing orders.
type Order struct {
	ID            int64
	CustomerName  string
	CustomerPhone *string
	Address       string
	MessagingID   *string
	PaymentMethod string
	CashTendered  *float64
	Total         float64
	Delivery      *DeliverySnapshot
	Status        Status
	CreatedAt     time.Time
	Items         []OrderItem
}

// OrderItem is an immutable line snapshot. ProductName and UnitPrice
// are copied from the catalog at checkout.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	UnitPrice   float64
	Quantity    int
	Note        string
}

// DeliverySnapshot is the delivery quote frozen into the order.
type DeliverySnapshot struct {
	DistanceKm float64
	Fee        float64
	Lat        float64
	Lng        float64
}

const (
	PaymentCash = "dinheiro"
	PaymentCard = "cartao"
	PaymentPix  = "pix"
)
