package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"brutus/internal/domain"
	"brutus/internal/errors"
)

// RemovedProductName is shown for line items whose product has since
// been deleted from the catalog.
const RemovedProductName = "Produto removido"

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (int64, error) {
	query := `
		INSERT INTO Orders (customerName, customerPhone, customerAddress, messagingId,
		                    paymentMethod, cashTendered, total,
		                    deliveryDistance, deliveryFee, deliveryLat, deliveryLng,
		                    status, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`

	var distance, fee, lat, lng *float64
	if order.Delivery != nil {
		distance = &order.Delivery.DistanceKm
		fee = &order.Delivery.Fee
		lat = &order.Delivery.Lat
		lng = &order.Delivery.Lng
	}

	result, err := tx.ExecContext(ctx, query,
		order.CustomerName, order.CustomerPhone, order.Address, order.MessagingID,
		order.PaymentMethod, order.CashTendered, order.Total,
		distance, fee, lat, lng,
		string(order.Status),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return lastInsertID, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, customerName, customerPhone, customerAddress, messagingId,
		       paymentMethod, cashTendered, total,
		       deliveryDistance, deliveryFee, deliveryLat, deliveryLng,
		       status, createdAt
		FROM Orders
		WHERE id = ?
	`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	query := `UPDATE Orders SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM Orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// ListNewestFirst returns all orders, newest first, each with its line
// items. Item names come from the snapshot taken at checkout; lines
// whose snapshot predates that column fall back to the joined catalog
// name, then to a placeholder, so one deleted product never fails the
// whole listing.
func (r *MySQLOrderRepository) ListNewestFirst(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, customerName, customerPhone, customerAddress, messagingId,
		       paymentMethod, cashTendered, total,
		       deliveryDistance, deliveryFee, deliveryLat, deliveryLng,
		       status, createdAt
		FROM Orders
		ORDER BY createdAt DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	index := make(map[int64]int)
	var ids []int64
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		index[order.ID] = len(orders)
		ids = append(ids, order.ID)
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.findItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) findItems(ctx context.Context, orderIDs []int64) ([]domain.OrderItem, error) {
	placeholders := make([]string, len(orderIDs))
	args := make([]interface{}, 0, len(orderIDs))
	for i, id := range orderIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT oi.id, oi.orderId, oi.productId,
		       COALESCE(NULLIF(oi.productName, ''), p.name, '%s'),
		       oi.unitPrice, oi.quantity, oi.note
		FROM OrderItems oi
		LEFT JOIN Products p ON p.id = oi.productId
		WHERE oi.orderId IN (%s)
		ORDER BY oi.id`,
		RemovedProductName,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity, &item.Note)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var status string
	var distance, fee, lat, lng *float64

	err := row.Scan(
		&order.ID, &order.CustomerName, &order.CustomerPhone, &order.Address, &order.MessagingID,
		&order.PaymentMethod, &order.CashTendered, &order.Total,
		&distance, &fee, &lat, &lng,
		&status, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.Status(status)
	if distance != nil && fee != nil {
		order.Delivery = &domain.DeliverySnapshot{
			DistanceKm: *distance,
			Fee:        *fee,
		}
		if lat != nil && lng != nil {
			order.Delivery.Lat = *lat
			order.Delivery.Lng = *lng
		}
	}

	return &order, nil
}
