package helpers

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTicketQRData(t *testing.T) {
	ticketID := uuid.New()
	reservationID := uuid.New()
	eventID := uuid.New()
	userID := uuid.New()
	secret := "test-secret"

	qrData := TicketQRData(ticketID, reservationID, eventID, userID, secret)

	assert.True(t, strings.HasPrefix(qrData, "ticket:"+ticketID.String()+";"))
	assert.Contains(t, qrData, "reservation:"+reservationID.String())
	assert.Contains(t, qrData, "event:"+eventID.String())
	assert.True(t, ValidateTicketQRData(qrData, ticketID, reservationID, userID, secret))
}

func TestValidateTicketQRData(t *testing.T) {
	ticketID := uuid.New()
	reservationID := uuid.New()
	eventID := uuid.New()
	userID := uuid.New()
	secret := "test-secret"
	qrData := TicketQRData(ticketID, reservationID, eventID, userID, secret)

	t.Run("rejects a tampered payload", func(t *testing.T) {
		tampered := strings.Replace(qrData, ticketID.String(), uuid.New().String(), 1)
		assert.False(t, ValidateTicketQRData(tampered, uuid.New(), reservationID, userID, secret))
	})

	t.Run("rejects the wrong secret", func(t *testing.T) {
		assert.False(t, ValidateTicketQRData(qrData, ticketID, reservationID, userID, "other-secret"))
	})

	t.Run("rejects a malformed payload", func(t *testing.T) {
		assert.False(t, ValidateTicketQRData("not-a-qr-payload", ticketID, reservationID, userID, secret))
	})
}
