package dto

import (
	"hotel/internal/domains/invoice/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
)

// InvoiceFile is a rendered invoice ready to be downloaded.
type InvoiceFile struct {
	FileName string
	Content  []byte
	Created  bool
}

type InvoiceResponse struct {
	ID            string  `json:"id"`
	ReservationID string  `json:"reservation_id"`
	InvoiceNumber string  `json:"invoice_number"`
	Amount        float64 `json:"amount"`
	FileURL       string  `json:"file_url"`
	IssuedAt      string  `json:"issued_at"`
	gDto.Metadata
}

func (i *InvoiceResponse) FromModel(model model.Invoice) {
	i.ID = model.ID
	i.ReservationID = model.ReservationID
	i.InvoiceNumber = model.InvoiceNumber
	i.Amount = model.Amount
	i.FileURL = model.FileURL
	i.IssuedAt = model.IssuedAt.Format(constant.DateFormat)
	i.Metadata.FromModel(model.Metadata)
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		g.Invoices[i].FromModel(mod)
	}
}
