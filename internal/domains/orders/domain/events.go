package domain

// OrderPlaced is the event published after an order was durably persisted.
// It exists only on the wire and in the consumer's handler scope; it is
// never stored. The trace correlation token travels in transport headers,
// not in the payload.
type OrderPlaced struct {
	OrderNumber string `json:"orderNumber"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}
