package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/url"
	"time"

	"github.com/acmedash/backend/internal/audit"
	"github.com/acmedash/backend/internal/config"
	"github.com/acmedash/backend/internal/models"
	"github.com/google/uuid"
)

// Outcome tells the web layer what to do after a form action
type Outcome int

const (
	// OutcomeInvalid: nothing was written, State carries the field errors
	OutcomeInvalid Outcome = iota + 1
	// OutcomeNavigate: written, send the client to Redirect
	OutcomeNavigate
	// OutcomeStay: written, no navigation
	OutcomeStay
)

// State is handed back to the form that submitted the action
type State struct {
	Errors  FieldErrors `json:"errors,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ActionResult struct {
	Outcome  Outcome
	State    State
	Redirect string
}

type InvoiceService struct {
	db          *sql.DB
	revalidator Revalidator
	audit       *audit.Logger
	validator   *ValidationHelper
	config      *config.DashboardConfig
	now         func() time.Time
}

func NewInvoiceService(db *sql.DB, revalidator Revalidator, auditLogger *audit.Logger, cfg *config.DashboardConfig) *InvoiceService {
	return &InvoiceService{
		db:          db,
		revalidator: revalidator,
		audit:       auditLogger,
		validator:   NewValidationHelper(),
		config:      cfg,
		now:         time.Now,
	}
}

// CreateInvoice inserts a new invoice dated today (UTC)
func (s *InvoiceService) CreateInvoice(ctx context.Context, form url.Values) (*ActionResult, error) {
	input, fieldErrs := s.validator.ParseInvoiceForm(form)
	if fieldErrs != nil {
		return invalid(fieldErrs, "Missing Fields. Failed to Create Invoice."), nil
	}

	amountInCents := input.Amount * 100
	date := s.now().UTC().Format(time.DateOnly)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)`,
		input.CustomerID, amountInCents, string(input.Status), date)
	if err != nil {
		log.Printf("[INVOICE] Failed to create invoice for customer %s: %v", input.CustomerID, err)
		s.audit.LogError("INVOICE_CREATE", "", err)
		return nil, &DatabaseError{Message: msgCreateFailed, Err: err}
	}

	s.audit.LogMutation("INVOICE_CREATED", "", input.CustomerID, amountInCents, string(input.Status))
	return s.revalidateAndNavigate(ctx), nil
}

// UpdateInvoice rewrites customer, amount and status of invoice id. The
// creation date is left alone.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, form url.Values) (*ActionResult, error) {
	input, fieldErrs := s.validator.ParseInvoiceForm(form)
	if fieldErrs != nil {
		return invalid(fieldErrs, "Missing Fields. Failed to Update Invoice."), nil
	}

	amountInCents := input.Amount * 100

	_, err := s.db.ExecContext(ctx, `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4`,
		input.CustomerID, amountInCents, string(input.Status), id)
	if err != nil {
		log.Printf("[INVOICE] Failed to update invoice %s: %v", id, err)
		s.audit.LogError("INVOICE_UPDATE", id, err)
		return nil, &DatabaseError{Message: msgUpdateFailed, Err: err}
	}

	s.audit.LogMutation("INVOICE_UPDATED", id, input.CustomerID, amountInCents, string(input.Status))
	return s.revalidateAndNavigate(ctx), nil
}

// DeleteInvoice removes invoice id. Deleting an id that does not exist is
// not an error.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) (*ActionResult, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		log.Printf("[INVOICE] Failed to delete invoice %s: %v", id, err)
		s.audit.LogError("INVOICE_DELETE", id, err)
		return nil, &DatabaseError{Message: msgDeleteFailed, Err: err}
	}

	s.audit.LogMutation("INVOICE_DELETED", id, "", 0, "")
	s.revalidator.Revalidate(ctx, s.config.InvoicesPath)
	return &ActionResult{Outcome: OutcomeStay}, nil
}

// ListInvoices returns one page of invoices whose customer, amount, date or
// status matches query
func (s *InvoiceService) ListInvoices(ctx context.Context, query string, page int) ([]models.InvoicesTable, error) {
	if page < 1 {
		page = 1
	}
	perPage := s.config.ItemsPerPage
	offset := (page - 1) * perPage

	rows, err := s.db.QueryContext(ctx, `
		SELECT invoices.id, invoices.customer_id, customers.name, customers.email, customers.image_url,
		       invoices.date::text, invoices.amount, invoices.status
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE customers.name ILIKE $1
		   OR customers.email ILIKE $1
		   OR invoices.amount::text ILIKE $1
		   OR invoices.date::text ILIKE $1
		   OR invoices.status ILIKE $1
		ORDER BY invoices.date DESC
		LIMIT $2 OFFSET $3`,
		"%"+query+"%", perPage, offset)
	if err != nil {
		log.Printf("[INVOICE] Failed to list invoices (query=%q page=%d): %v", query, page, err)
		return nil, &DatabaseError{Message: msgFetchFailed, Err: err}
	}
	defer rows.Close()

	invoices := []models.InvoicesTable{}
	for rows.Next() {
		var inv models.InvoicesTable
		var status string
		if err := rows.Scan(&inv.ID, &inv.CustomerID, &inv.Name, &inv.Email, &inv.ImageURL,
			&inv.Date, &inv.Amount, &status); err != nil {
			return nil, &DatabaseError{Message: msgFetchFailed, Err: err}
		}
		inv.Status = models.InvoiceStatus(status)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, &DatabaseError{Message: msgFetchFailed, Err: err}
	}

	return invoices, nil
}

// InvoicePages counts the pages ListInvoices can return for query
func (s *InvoiceService) InvoicePages(ctx context.Context, query string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE customers.name ILIKE $1
		   OR customers.email ILIKE $1
		   OR invoices.amount::text ILIKE $1
		   OR invoices.date::text ILIKE $1
		   OR invoices.status ILIKE $1`,
		"%"+query+"%").Scan(&count)
	if err != nil {
		log.Printf("[INVOICE] Failed to count invoices (query=%q): %v", query, err)
		return 0, &DatabaseError{Message: "Database Error: Failed to fetch total number of invoices.", Err: err}
	}

	perPage := s.config.ItemsPerPage
	return (count + perPage - 1) / perPage, nil
}

// GetInvoice loads invoice id for the edit form, amount in major units
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.InvoiceForm, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvoiceNotFound
	}

	var inv models.InvoiceForm
	var cents int64
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer_id, amount, status
		FROM invoices
		WHERE id = $1`, id).Scan(&inv.ID, &inv.CustomerID, &cents, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		log.Printf("[INVOICE] Failed to fetch invoice %s: %v", id, err)
		return nil, &DatabaseError{Message: "Database Error: Failed to fetch invoice.", Err: err}
	}

	inv.Amount = float64(cents) / 100
	inv.Status = models.InvoiceStatus(status)
	return &inv, nil
}

// ListCustomers returns every customer for the invoice form select
func (s *InvoiceService) ListCustomers(ctx context.Context) ([]models.CustomerField, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM customers ORDER BY name ASC`)
	if err != nil {
		log.Printf("[INVOICE] Failed to list customers: %v", err)
		return nil, &DatabaseError{Message: "Database Error: Failed to fetch all customers.", Err: err}
	}
	defer rows.Close()

	customers := []models.CustomerField{}
	for rows.Next() {
		var c models.CustomerField
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, &DatabaseError{Message: "Database Error: Failed to fetch all customers.", Err: err}
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *InvoiceService) revalidateAndNavigate(ctx context.Context) *ActionResult {
	s.revalidator.Revalidate(ctx, s.config.InvoicesPath)
	return &ActionResult{Outcome: OutcomeNavigate, Redirect: s.config.InvoicesPath}
}

func invalid(fieldErrs FieldErrors, message string) *ActionResult {
	return &ActionResult{
		Outcome: OutcomeInvalid,
		State:   State{Errors: fieldErrs, Message: message},
	}
}
