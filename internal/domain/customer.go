package domain

import "time"

// Customer is the directory entry keyed by the external messaging
// identifier, consulted at checkout so returning customers can reuse
// their saved address.
type Customer struct {
	ID          int64
	MessagingID string
	Name        string
	Phone       *string
	Address     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
