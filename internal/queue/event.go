// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Event types published on the rental.events queue.
const (
	RentalOpened = "rental.opened"
	RentalClosed = "rental.closed"
)

// RentalEvent is published after a rental transaction commits. It carries
// enough denormalized detail for downstream consumers to log or notify
// without querying the primary database.
type RentalEvent struct {
	Type          string  `json:"type"`
	RentalID      uint64  `json:"rental_id"`
	CustomerID    uint64  `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	MovieID       uint64  `json:"movie_id"`
	MovieTitle    string  `json:"movie_title"`
	RentalFee     float64 `json:"rental_fee"`
	NumberInStock uint32  `json:"number_in_stock"`
	OccurredAt    string  `json:"occurred_at"`
}
