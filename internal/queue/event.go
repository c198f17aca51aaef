// Package queue carries the booking hand-off over RabbitMQ: the event
// published when a session confirms its seats, the publisher, and the
// consumer that records each hand-off in logs/booking.log.
package queue

// BookingQueue is the durable queue read by the booking collaborator.
const BookingQueue = "booking.confirmed"

// SeatsConfirmedEvent is published when a session confirms its seat
// selection.  It carries everything the booking collaborator needs without
// calling back into the dashboard.
type SeatsConfirmedEvent struct {
	SessionID   string   `json:"session_id"`
	UserID      string   `json:"user_id,omitempty"`
	UserName    string   `json:"user_name,omitempty"`
	TheaterID   int64    `json:"theater_id"`
	TheaterName string   `json:"theater_name"`
	Language    string   `json:"language"`
	Format      string   `json:"format"`
	Time        string   `json:"time"`
	Seats       []string `json:"seats"`
	UnitPrice   int64    `json:"unit_price"`
	TotalPrice  int64    `json:"total_price"`
	ConfirmedAt string   `json:"confirmed_at"`
}
