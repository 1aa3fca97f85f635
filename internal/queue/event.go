// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketPurchasedEvent is published after a ticket purchase commits. It
// carries enough for downstream consumers to log or trigger analytics
// without querying the primary database.
type TicketPurchasedEvent struct {
	CustomerID  int64  `json:"customer_id"`
	ShowtimeID  int64  `json:"showtime_id"`
	PurchasedAt string `json:"purchased_at"`
}
