package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"cabzii/internal/utils"
)

// invoiceData is the flattened view of one booking rendered into a PDF.
type invoiceData struct {
	BookingID    string
	KindName     string
	ClientName   string
	ClientMobile string
	ItemName     string
	PackageName  string
	PickupCity   string
	PickupDate   string
	PickupTime   string
	Amount       float64
	Status       string
	PaymentState string
	BookedAt     time.Time
}

// InvoiceService renders a booking invoice PDF for clients and the back
// office.
type InvoiceService struct {
	Bookings  BookingService
	RequestID string

	// Loader bypasses persistence in tests.
	Loader func(k Kind, bookingID string) (invoiceData, error)
}

func (s InvoiceService) GenerateInvoice(ctx context.Context, k Kind, bookingID string) ([]byte, string, error) {
	data, err := s.load(ctx, k, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", bookingID)
	return buildBookingInvoicePDF(data)
}

func (s InvoiceService) load(ctx context.Context, k Kind, bookingID string) (invoiceData, error) {
	if s.Loader != nil {
		return s.Loader(k, bookingID)
	}

	client, b, err := s.Bookings.locate(ctx, k, bookingID)
	if err != nil {
		return invoiceData{}, err
	}

	amount := b.TotalFare
	if k.UsesBookingValue {
		amount = b.BookingValue
	}
	item := b.ItemName
	if item == "" {
		item = b.PackageName
	}
	date := ""
	if b.Pickup.Date != nil {
		date = b.Pickup.Date.Format("2006-01-02")
	}

	return invoiceData{
		BookingID:    b.BookingID,
		KindName:     k.Name,
		ClientName:   client.DisplayName(),
		ClientMobile: client.Mobile,
		ItemName:     item,
		PackageName:  b.PackageName,
		PickupCity:   b.Pickup.City,
		PickupDate:   date,
		PickupTime:   b.Pickup.Time,
		Amount:       amount,
		Status:       b.Status,
		PaymentState: b.PaymentStatus,
		BookedAt:     b.BookingTime,
	}, nil
}

func buildBookingInvoicePDF(d invoiceData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No  : INV-"+d.BookingID)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Booked On   : "+utils.FormatDateTime(d.BookedAt))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed To:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name   : %s", orDash(d.ClientName)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Mobile : %s", orDash(d.ClientMobile)))
	pdf.Ln(10)

	desc := fmt.Sprintf("%s booking %s", capitalize(d.KindName), orDash(d.ItemName))
	if d.PackageName != "" && d.PackageName != d.ItemName {
		desc += " (" + d.PackageName + ")"
	}
	if d.PickupCity != "" {
		desc += " from " + d.PickupCity
	}
	if d.PickupDate != "" {
		desc += " on " + d.PickupDate
		if d.PickupTime != "" {
			desc += " " + d.PickupTime
		}
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Status : "+orDash(d.Status)+" / payment "+orDash(d.PaymentState))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupees(d.Amount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This invoice covers one booking. Payment on ride unless marked paid.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%s.pdf", d.BookingID)
	return buf.Bytes(), filename, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}
