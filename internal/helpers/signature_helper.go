package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TicketSignature signs the identifying triple of a ticket so the QR
// payload embedded in the rendered document can be verified offline.
func TicketSignature(ticketID, reservationID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", ticketID.String(), reservationID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// TicketQRData builds the payload encoded into the ticket's QR code.
func TicketQRData(ticketID, reservationID, eventID, userID uuid.UUID, secretKey string) string {
	signature := TicketSignature(ticketID, reservationID, userID, secretKey)
	return fmt.Sprintf("ticket:%s;reservation:%s;event:%s;signature:%s",
		ticketID.String(),
		reservationID.String(),
		eventID.String(),
		signature,
	)
}

// ValidateTicketQRData checks a scanned QR payload against the ticket it
// claims to represent.
func ValidateTicketQRData(qrData string, ticketID, reservationID, userID uuid.UUID, secretKey string) bool {
	parts := strings.Split(qrData, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[3], "signature:") {
		return false
	}
	signature := strings.TrimPrefix(parts[3], "signature:")
	expected := TicketSignature(ticketID, reservationID, userID, secretKey)
	return hmac.Equal([]byte(expected), []byte(signature))
}
