package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"hotel/internal/domains/invoice/model"
	"hotel/shared/constant"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth   = 190.0
	labelWidth  = 45.0
	lineHeight  = 7.0
	fontFamily  = "Helvetica"
	headingSize = 18
	bodySize    = 11
)

// Render lays out the invoice on a single A4 page. The layout is fixed and
// the output only depends on doc.
func Render(doc model.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(doc.Number, true)
	pdf.SetCreator(doc.HotelName, true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.IssuedAt)
	pdf.SetModificationDate(doc.IssuedAt)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", headingSize)
	pdf.CellFormat(pageWidth, 10, tr(doc.HotelName), "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", bodySize)

	for _, line := range []string{doc.HotelAddress, doc.HotelPhone, doc.HotelEmail} {
		if line != constant.Empty {
			pdf.CellFormat(pageWidth, 5, tr(line), "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(6)
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(pageWidth, 8, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont(fontFamily, "", bodySize)
	pdf.CellFormat(pageWidth, 6, tr("No. "+doc.Number), "", 1, "R", false, 0, "")
	pdf.CellFormat(pageWidth, 6, "Issued "+doc.IssuedAt.Format(constant.DayDateFormat), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	section(pdf, "Guest")
	row(pdf, tr, "Name", doc.GuestName)
	row(pdf, tr, "Phone", doc.GuestPhone)
	row(pdf, tr, "Email", doc.GuestEmail)
	pdf.Ln(3)

	section(pdf, "Stay")
	row(pdf, tr, "Check-in", doc.CheckIn.Format(constant.DayDateFormat))
	row(pdf, tr, "Check-out", doc.CheckOut.Format(constant.DayDateFormat))
	row(pdf, tr, "Room", roomLabel(doc))
	pdf.Ln(3)

	charges(pdf, doc)

	pdf.Ln(10)
	pdf.SetFont(fontFamily, "I", 9)
	pdf.CellFormat(pageWidth, 5, tr("Thank you for staying with "+doc.HotelName+"."), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(pageWidth, lineHeight, title, "B", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", bodySize)
}

func row(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	if value == constant.Empty {
		value = "-"
	}

	pdf.CellFormat(labelWidth, lineHeight, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(pageWidth-labelWidth, lineHeight, tr(value), "", 1, "L", false, 0, "")
}

func charges(pdf *fpdf.Fpdf, doc model.Document) {
	widths := []float64{85, 25, 40, 40}

	pdf.SetFont(fontFamily, "B", bodySize)
	pdf.SetFillColor(235, 235, 235)

	for i, header := range []string{"Description", "Nights", "Rate", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}

		pdf.CellFormat(widths[i], 8, header, "1", 0, align, true, 0, "")
	}

	pdf.Ln(-1)
	pdf.SetFont(fontFamily, "", bodySize)

	pdf.CellFormat(widths[0], 8, "Accommodation", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[1], 8, strconv.Itoa(doc.Nights), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[2], 8, Amount(doc.Rate), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, Amount(doc.Total), "1", 1, "R", false, 0, "")

	pdf.SetFont(fontFamily, "B", bodySize)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, Amount(doc.Total), "1", 1, "R", false, 0, "")
}

func roomLabel(doc model.Document) string {
	if doc.RoomType == constant.Empty {
		return doc.RoomNumber
	}

	return doc.RoomNumber + " (" + doc.RoomType + ")"
}

// Amount formats money with two decimals and thousands separators.
func Amount(value float64) string {
	raw := strconv.FormatFloat(value, 'f', 2, 64)

	sign := constant.Empty
	if raw[0] == '-' {
		sign, raw = "-", raw[1:]
	}

	whole, fraction := raw[:len(raw)-3], raw[len(raw)-3:]

	var grouped bytes.Buffer
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}

		grouped.WriteRune(digit)
	}

	return sign + grouped.String() + fraction
}
