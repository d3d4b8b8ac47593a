package board

// NewIDs returns the ids present in orders but absent from prev, in the
// order they appear in the listing. prev is the id set from the last
// completed poll.
func NewIDs(prev map[int64]bool, orders []Order) []int64 {
	var out []int64
	for _, o := range orders {
		if !prev[o.ID] {
			out = append(out, o.ID)
		}
	}
	return out
}

// IDSet builds the id set for the next diff.
func IDSet(orders []Order) map[int64]bool {
	set := make(map[int64]bool, len(orders))
	for _, o := range orders {
		set[o.ID] = true
	}
	return set
}
