package models

// InvoiceStatus is the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

// Invoice represents a row of the invoices table. Amount is stored in cents.
type Invoice struct {
	ID         string        `json:"id" db:"id"`
	CustomerID string        `json:"customer_id" db:"customer_id"`
	Amount     int64         `json:"amount" db:"amount"`
	Status     InvoiceStatus `json:"status" db:"status"`
	Date       string        `json:"date" db:"date"`
}

// InvoiceForm is the edit form view of an invoice, amount in major units
type InvoiceForm struct {
	ID         string        `json:"id" example:"d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"`
	CustomerID string        `json:"customer_id" example:"3958dc9e-712f-4377-85e9-fec4b6a6442a"`
	Amount     float64       `json:"amount" example:"157.95"`
	Status     InvoiceStatus `json:"status" example:"pending"`
}

// InvoicesTable is one row of the filtered invoice listing
type InvoicesTable struct {
	ID         string        `json:"id" db:"id"`
	CustomerID string        `json:"customer_id" db:"customer_id"`
	Name       string        `json:"name" db:"name"`
	Email      string        `json:"email" db:"email"`
	ImageURL   string        `json:"image_url" db:"image_url"`
	Date       string        `json:"date" db:"date"`
	Amount     int64         `json:"amount" db:"amount"`
	Status     InvoiceStatus `json:"status" db:"status"`
}
