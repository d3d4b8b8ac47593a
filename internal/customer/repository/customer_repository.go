package repository

import (
	"context"
	"database/sql"
	"fmt"

	"brutus/internal/domain"
	"brutus/internal/errors"
)

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

func (r *MySQLCustomerRepository) FindByMessagingID(ctx context.Context, messagingID string) (*domain.Customer, error) {
	query := `
		SELECT id, messagingId, name, phone, address, createdAt, updatedAt
		FROM Customers
		WHERE messagingId = ?
	`

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, messagingID).Scan(
		&c.ID, &c.MessagingID, &c.Name, &c.Phone, &c.Address,
		&c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer %s not found", messagingID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer: %w", err)
	}

	return &c, nil
}

// Upsert inserts the customer or refreshes name, phone and address for
// an already known messaging id.
func (r *MySQLCustomerRepository) Upsert(ctx context.Context, c domain.Customer) error {
	query := `
		INSERT INTO Customers (messagingId, name, phone, address)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			phone = VALUES(phone),
			address = VALUES(address),
			updatedAt = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, c.MessagingID, c.Name, c.Phone, c.Address); err != nil {
		return fmt.Errorf("upserting customer: %w", err)
	}

	return nil
}
