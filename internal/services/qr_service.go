package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// QRService renders the reference block printed on an invoice
type QRService struct {
	invoices *InvoiceService
	size     int
}

func NewQRService(invoices *InvoiceService) *QRService {
	return &QRService{
		invoices: invoices,
		size:     256,
	}
}

// InvoiceReference is the payload encoded in the QR code
type InvoiceReference struct {
	InvoiceID  string  `json:"invoiceId"`
	CustomerID string  `json:"customerId"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// GenerateInvoiceQR returns a PNG encoding the reference of invoice id
func (s *QRService) GenerateInvoiceQR(ctx context.Context, id string) ([]byte, error) {
	inv, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(InvoiceReference{
		InvoiceID:  inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount,
		Status:     string(inv.Status),
	})
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.New(string(payload), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode invoice qr: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(s.size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
