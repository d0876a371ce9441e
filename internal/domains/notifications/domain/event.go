// Package domain holds the inbound event contract of the notification
// context. The shape mirrors what the order service publishes; the two
// contexts share the wire format, not Go types.
package domain

// OrderPlaced is the event consumed from the order-placed topic.
type OrderPlaced struct {
	OrderNumber string `json:"orderNumber"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}
