package services

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRService_GenerateInvoiceQR(t *testing.T) {
	const id = "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"

	t.Run("renders a png", func(t *testing.T) {
		invoices, sqlMock := newTestInvoiceService(t, &MockRevalidator{})
		service := NewQRService(invoices)

		sqlMock.ExpectQuery("SELECT id, customer_id, amount, status FROM invoices").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "amount", "status"}).
				AddRow(id, "c1", 5000, "pending"))

		data, err := service.GenerateInvoiceQR(context.Background(), id)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
	})

	t.Run("unknown invoice", func(t *testing.T) {
		invoices, _ := newTestInvoiceService(t, &MockRevalidator{})
		service := NewQRService(invoices)

		_, err := service.GenerateInvoiceQR(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrInvoiceNotFound)
	})
}
