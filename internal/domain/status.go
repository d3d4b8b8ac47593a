package domain

// Status is the kitchen lifecycle of an order. The sequence is fixed;
// orders move one step at a time in either direction, except archiving,
// which is reachable directly from any non-archived state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusArchived  Status = "archived"
)

// StatusOrder is the fixed linear sequence of statuses.
var StatusOrder = []Status{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusArchived,
}

func (s Status) Valid() bool {
	for _, st := range StatusOrder {
		if s == st {
			return true
		}
	}
	return false
}

func (s Status) index() int {
	for i, st := range StatusOrder {
		if s == st {
			return i
		}
	}
	return -1
}

// Next returns the following status. Archived has no successor and
// returns itself.
func (s Status) Next() Status {
	i := s.index()
	if i < 0 || i >= len(StatusOrder)-1 {
		return s
	}
	return StatusOrder[i+1]
}

// Prev returns the preceding status. Pending has no predecessor and
// returns itself.
func (s Status) Prev() Status {
	i := s.index()
	if i <= 0 {
		return s
	}
	return StatusOrder[i-1]
}

// CanTransition reports whether an order may move from one status to
// another: one step forward or backward, staying put, or archiving from
// any non-archived state. Archived is terminal.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == StatusArchived {
		return to == StatusArchived
	}
	if to == StatusArchived {
		return true
	}
	if from == to {
		return true
	}
	fi, ti := from.index(), to.index()
	return ti == fi+1 || ti == fi-1
}
