package board

import "brutus/internal/domain"

// Snapshot is one rendered view of the board: every order partitioned
// into its status column, with the header counters the kitchen watches.
type Snapshot struct {
	Columns map[domain.Status][]Order
	Summary Summary
}

// Summary mirrors the board header: archived orders are out of sight
// and out of the totals.
type Summary struct {
	TotalOrders    int
	TotalValue     float64
	PendingCount   int
	PreparingCount int
}

// Partition splits the listing into the five status columns. Orders
// carrying an unknown status are dropped rather than crashing the
// board; the server is the authority on what statuses exist.
func Partition(orders []Order) Snapshot {
	columns := make(map[domain.Status][]Order, len(domain.StatusOrder))
	for _, s := range domain.StatusOrder {
		columns[s] = nil
	}

	var summary Summary
	for _, o := range orders {
		status := domain.Status(o.Status)
		if !status.Valid() {
			continue
		}
		columns[status] = append(columns[status], o)

		if status == domain.StatusArchived {
			continue
		}
		summary.TotalOrders++
		summary.TotalValue += o.Total
		switch status {
		case domain.StatusPending:
			summary.PendingCount++
		case domain.StatusPreparing:
			summary.PreparingCount++
		}
	}

	return Snapshot{Columns: columns, Summary: summary}
}
