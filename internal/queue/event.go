// Package queue publishes domain events to RabbitMQ for downstream
// consumers (mail notifications, analytics) without querying the
// primary database.
package queue

// ReservationConfirmedEvent is published when an admin confirms a
// reservation and its ticket has been issued.
type ReservationConfirmedEvent struct {
	ReservationID string `json:"reservation_id"`
	EventID       string `json:"event_id"`
	EventTitle    string `json:"event_title"`
	EventDateTime string `json:"event_date_time"`
	EventLocation string `json:"event_location"`
	UserID        string `json:"user_id"`
	UserEmail     string `json:"user_email"`
	TicketID      string `json:"ticket_id,omitempty"`
	ConfirmedAt   string `json:"confirmed_at"`
}
