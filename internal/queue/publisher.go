package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/hakimfr/reservia/internal/models"
)

const reservationConfirmedQueue = "reservation.confirmed"

// Publisher implements the engine's Notifier against RabbitMQ. Delivery
// is best effort: every error is logged and swallowed so a broker
// outage never fails a confirmation.
type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

func (p *Publisher) ReservationConfirmed(ctx context.Context, reservation *models.Reservation) {
	event := ReservationConfirmedEvent{
		ReservationID: reservation.ID.String(),
		EventID:       reservation.EventID.String(),
		EventTitle:    reservation.Event.Title,
		EventDateTime: reservation.Event.DateTime.UTC().Format(time.RFC3339),
		EventLocation: reservation.Event.Location,
		UserID:        reservation.UserID.String(),
		UserEmail:     reservation.User.Email,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if reservation.Ticket != nil {
		event.TicketID = reservation.Ticket.ID.String()
	}
	if err := p.publish(ctx, reservationConfirmedQueue, event); err != nil {
		log.Printf("queue: publish %s failed: %v", reservationConfirmedQueue, err)
	}
}

func (p *Publisher) publish(ctx context.Context, queueName string, payload any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts; declare is idempotent.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
