package domain

// Coordinates is a customer location used for delivery quoting.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DeliveryQuote is a priced distance estimate for delivering to a
// coordinate pair. It lives only for the duration of a checkout
// session and is recomputed whenever the location changes.
type DeliveryQuote struct {
	DistanceKm      float64
	Price           float64
	ResolvedAddress string
	Source          Coordinates
}
