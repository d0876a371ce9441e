package domain

// Order is the persisted record of a placed order. Records are append-only:
// once created they are never updated or deleted by the order flow. The
// price, SKU, and quantity are carried through from the request verbatim;
// this layer does not recompute or re-validate them.
type Order struct {
	ID          int64
	OrderNumber string
	SKUCode     string
	Price       float64
	Quantity    int
}
