package repository

import (
	"context"
	"database/sql"
	"fmt"

	"brutus/internal/domain"
)

const topLimit = 10

type TopProduct struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type TopCustomer struct {
	Name   string  `json:"name"`
	Phone  *string `json:"phone"`
	Orders int64   `json:"orders"`
	Spent  float64 `json:"spent"`
}

type DeliveryTotals struct {
	TotalFees  float64 `json:"totalFees"`
	AverageFee float64 `json:"averageFee"`
	Deliveries int64   `json:"deliveries"`
}

type GeneralTotals struct {
	Orders        int64   `json:"orders"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"averageTicket"`
	Customers     int64   `json:"customers"`
}

// MySQLStatsRepository aggregates over the live order history. Archived
// orders are excluded everywhere so the numbers reflect the current
// service period, not the whole lifetime of the database.
type MySQLStatsRepository struct {
	db *sql.DB
}

func NewMySQLStatsRepository(db *sql.DB) *MySQLStatsRepository {
	return &MySQLStatsRepository{db: db}
}

func (r *MySQLStatsRepository) TopProducts(ctx context.Context) ([]TopProduct, error) {
	query := `
		SELECT p.name, p.category,
			SUM(oi.quantity) AS quantity,
			SUM(oi.quantity * oi.unitPrice) AS revenue
		FROM OrderItems oi
		JOIN Products p ON oi.productId = p.id
		JOIN Orders o ON oi.orderId = o.id
		WHERE o.status != ?
		GROUP BY oi.productId, p.name, p.category
		ORDER BY quantity DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, domain.StatusArchived, topLimit)
	if err != nil {
		return nil, fmt.Errorf("querying top products: %w", err)
	}
	defer rows.Close()

	var out []TopProduct
	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.Name, &tp.Category, &tp.Quantity, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("scanning top product row: %w", err)
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

func (r *MySQLStatsRepository) TopCustomers(ctx context.Context) ([]TopCustomer, error) {
	query := `
		SELECT c.name, c.phone,
			COUNT(o.id) AS orders,
			SUM(o.total) AS spent
		FROM Customers c
		JOIN Orders o ON c.name = o.customerName
		WHERE o.status != ?
		GROUP BY c.id, c.name, c.phone
		ORDER BY spent DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, domain.StatusArchived, topLimit)
	if err != nil {
		return nil, fmt.Errorf("querying top customers: %w", err)
	}
	defer rows.Close()

	var out []TopCustomer
	for rows.Next() {
		var tc TopCustomer
		if err := rows.Scan(&tc.Name, &tc.Phone, &tc.Orders, &tc.Spent); err != nil {
			return nil, fmt.Errorf("scanning top customer row: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func (r *MySQLStatsRepository) DeliveryTotals(ctx context.Context) (*DeliveryTotals, error) {
	query := `
		SELECT COALESCE(SUM(deliveryFee), 0),
			COALESCE(AVG(deliveryFee), 0),
			COUNT(*)
		FROM Orders
		WHERE deliveryFee IS NOT NULL AND status != ?
	`

	var dt DeliveryTotals
	err := r.db.QueryRowContext(ctx, query, domain.StatusArchived).
		Scan(&dt.TotalFees, &dt.AverageFee, &dt.Deliveries)
	if err != nil {
		return nil, fmt.Errorf("querying delivery totals: %w", err)
	}
	return &dt, nil
}

func (r *MySQLStatsRepository) GeneralTotals(ctx context.Context) (*GeneralTotals, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(total), 0),
			COALESCE(AVG(total), 0),
			COUNT(DISTINCT customerName)
		FROM Orders
		WHERE status != ?
	`

	var gt GeneralTotals
	err := r.db.QueryRowContext(ctx, query, domain.StatusArchived).
		Scan(&gt.Orders, &gt.Revenue, &gt.AverageTicket, &gt.Customers)
	if err != nil {
		return nil, fmt.Errorf("querying general totals: %w", err)
	}
	return &gt, nil
}
