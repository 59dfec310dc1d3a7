package model

import (
	"strings"
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "invoices"
	EntityName = "invoice"

	FieldID            = "id"
	FieldReservationID = "reservation_id"
	FieldInvoiceNumber = "invoice_number"
	FieldAmount        = "amount"
	FieldFileURL       = "file_url"
	FieldIssuedAt      = "issued_at"
)

type Invoice struct {
	ID            string    `db:"id"`
	ReservationID string    `db:"reservation_id"`
	InvoiceNumber string    `db:"invoice_number"`
	Amount        float64   `db:"amount"`
	FileURL       string    `db:"file_url"`
	IssuedAt      time.Time `db:"issued_at"`
	model.Metadata
}

// Document holds everything printed on an invoice.
type Document struct {
	Number       string
	IssuedAt     time.Time
	HotelName    string
	HotelAddress string
	HotelPhone   string
	HotelEmail   string
	GuestName    string
	GuestPhone   string
	GuestEmail   string
	CheckIn      time.Time
	CheckOut     time.Time
	RoomNumber   string
	RoomType     string
	Nights       int
	Rate         float64
	Total        float64
}

// FileName is the name the PDF is downloaded and archived under.
func (d Document) FileName() string {
	return d.Number + ".pdf"
}

// Number derives a stable invoice number from the reservation.
func Number(reservationID string, issuedAt time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(reservationID, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}

	return "INV-" + issuedAt.Format("20060102") + "-" + suffix
}
