// Package renderer draws ticket documents. It sits behind the service
// layer's Renderer interface so tests can swap it out and confirmation
// never waits on it.
package renderer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/hakimfr/reservia/internal/fileutil"
	"github.com/hakimfr/reservia/internal/helpers"
	"github.com/hakimfr/reservia/internal/models"
)

// PDFRenderer writes an A4 ticket PDF with the event details and a
// signed QR code gate staff can verify offline.
type PDFRenderer struct {
	secretKey string
}

func NewPDFRenderer(secretKey string) *PDFRenderer {
	return &PDFRenderer{secretKey: secretKey}
}

func (r *PDFRenderer) Render(ctx context.Context, ticket *models.Ticket, path string) error {
	if err := fileutil.EnsureDir(path); err != nil {
		return fmt.Errorf("create ticket directory: %w", err)
	}

	qrData := helpers.TicketQRData(ticket.ID, ticket.ReservationID, ticket.EventID, ticket.UserID, r.secretKey)
	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode ticket QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 12, ticket.Event.Title)
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", ticket.Event.DateTime.Format("Monday, 02 Jan 2006 15:04 MST")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Location: %s", ticket.Event.Location))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Attendee: %s (%s)", ticket.User.Name, ticket.User.Email))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Reservation: %s", ticket.ReservationID))
	pdf.Ln(14)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(qrImage))
	pdf.ImageOptions("ticket-qr", 20, pdf.GetY(), 60, 60, false, opts, 0, "")

	pdf.SetY(pdf.GetY() + 66)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Ticket %s", ticket.ID))

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write ticket PDF: %w", err)
	}
	return nil
}
