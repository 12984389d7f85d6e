package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/acmedash/backend/internal/config"
	"github.com/acmedash/backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type InvoiceHandler struct {
	service   *services.InvoiceService
	qr        *services.QRService
	cache     *services.PageCache
	validator *services.ValidationHelper
	config    *config.DashboardConfig
}

func NewInvoiceHandler(service *services.InvoiceService, qr *services.QRService, cache *services.PageCache, cfg *config.DashboardConfig) *InvoiceHandler {
	return &InvoiceHandler{
		service:   service,
		qr:        qr,
		cache:     cache,
		validator: services.NewValidationHelper(),
		config:    cfg,
	}
}

// Routes mounts the invoice endpoints under the invoices path
func (h *InvoiceHandler) Routes(r chi.Router) {
	r.Route(h.config.InvoicesPath, func(r chi.Router) {
		r.Get("/", h.ListInvoices)
		r.Post("/", h.CreateInvoice)
		r.Get("/pages", h.InvoicePages)
		r.Get("/{id}", h.GetInvoice)
		r.Get("/{id}/qr", h.InvoiceQR)
		r.Post("/{id}/edit", h.UpdateInvoice)
		r.Put("/{id}", h.UpdateInvoice)
		r.Post("/{id}/delete", h.DeleteInvoice)
		r.Delete("/{id}", h.DeleteInvoice)
	})
}

type invoiceListResponse struct {
	Invoices any    `json:"invoices"`
	Query    string `json:"query"`
	Page     int    `json:"page"`
}

// ListInvoices lists invoices matching a search query
// @Summary List invoices
// @Description Filtered, paginated invoice listing. Responses are cached until the next invoice mutation.
// @Tags invoices
// @Produce json
// @Security SessionCookie
// @Param query query string false "Search term"
// @Param page query int false "Page number (default: 1)"
// @Success 200 {object} object{invoices=[]models.InvoicesTable,query=string,page=int}
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /dashboard/invoices [get]
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	params, err := h.validator.ParseListParams(r.URL.Query())
	if err != nil {
		services.SendErrorResponse(w, "Invalid listing parameters", http.StatusBadRequest, err)
		return
	}

	cacheKey := url.Values{"query": {params.Query}, "page": {strconv.Itoa(params.Page)}}.Encode()
	if body, ok := h.cache.Get(r.Context(), h.config.InvoicesPath, cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(body)
		return
	}
	gen, cacheable := h.cache.Generation(r.Context(), h.config.InvoicesPath)

	invoices, err := h.service.ListInvoices(r.Context(), params.Query, params.Page)
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusInternalServerError, nil)
		return
	}

	body, err := json.Marshal(invoiceListResponse{Invoices: invoices, Query: params.Query, Page: params.Page})
	if err != nil {
		log.Printf("[INVOICE] Failed to encode listing: %v", err)
		services.SendErrorResponse(w, "Something went wrong", http.StatusInternalServerError, nil)
		return
	}
	if cacheable {
		h.cache.Put(r.Context(), h.config.InvoicesPath, cacheKey, gen, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(body)
}

// InvoicePages returns the number of listing pages
// @Summary Count invoice pages
// @Tags invoices
// @Produce json
// @Security SessionCookie
// @Param query query string false "Search term"
// @Success 200 {object} object{totalPages=int}
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /dashboard/invoices/pages [get]
func (h *InvoiceHandler) InvoicePages(w http.ResponseWriter, r *http.Request) {
	params, err := h.validator.ParseListParams(r.URL.Query())
	if err != nil {
		services.SendErrorResponse(w, "Invalid listing parameters", http.StatusBadRequest, err)
		return
	}

	pages, err := h.service.InvoicePages(r.Context(), params.Query)
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"totalPages": pages})
}

// CreateInvoice handles the create invoice form
// @Summary Create invoice
// @Description Validates the form, stores the invoice dated today and redirects to the listing
// @Tags invoices
// @Accept x-www-form-urlencoded
// @Produce json
// @Security SessionCookie
// @Param customerId formData string true "Customer ID"
// @Param amount formData number true "Amount in dollars"
// @Param status formData string true "pending or paid"
// @Success 303 "Redirect to the invoice listing"
// @Failure 422 {object} services.State
// @Failure 500 {object} services.ErrorResponse
// @Router /dashboard/invoices [post]
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(w, r)
	if err != nil {
		services.SendErrorResponse(w, "Invalid form submission", http.StatusBadRequest, nil)
		return
	}

	result, err := h.service.CreateInvoice(r.Context(), form)
	writeActionResult(w, r, result, err)
}

// UpdateInvoice handles the edit invoice form
// @Summary Update invoice
// @Description Replaces customer, amount and status of an invoice and redirects to the listing
// @Tags invoices
// @Accept x-www-form-urlencoded
// @Produce json
// @Security SessionCookie
// @Param id path string true "Invoice ID"
// @Param customerId formData string true "Customer ID"
// @Param amount formData number true "Amount in dollars"
// @Param status formData string true "pending or paid"
// @Success 303 "Redirect to the invoice listing"
// @Failure 422 {object} services.State
// @Failure 500 {object} services.ErrorResponse
// @Router /dashboard/invoices/{id}/edit [post]
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(w, r)
	if err != nil {
		services.SendErrorResponse(w, "Invalid form submission", http.StatusBadRequest, nil)
		return
	}

	result, err := h.service.UpdateInvoice(r.Context(), chi.URLParam(r, "id"), form)
	writeActionResult(w, r, result, err)
}

// DeleteInvoice removes an invoice
// @Summary Delete invoice
// @Tags invoices
// @Security SessionCookie
// @Param id path string true "Invoice ID"
// @Success 204 "Deleted, or already absent"
// @Failure 500 {object} services.ErrorResponse
// @Router /dashboard/invoices/{id}/delete [post]
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DeleteInvoice(r.Context(), chi.URLParam(r, "id"))
	writeActionResult(w, r, result, err)
}

// GetInvoice returns the edit form data of an invoice
// @Summary Get invoice
// @Tags invoices
// @Produce json
// @Security SessionCookie
// @Param id path string true "Invoice ID"
// @Success 200 {object} models.InvoiceForm
// @Failure 404 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /dashboard/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, services.ErrInvoiceNotFound) {
		services.SendErrorResponse(w, "Invoice not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// InvoiceQR renders the invoice reference as a QR code
// @Summary Invoice QR code
// @Tags invoices
// @Produce png
// @Security SessionCookie
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} services.ErrorResponse
// @Router /dashboard/invoices/{id}/qr [get]
func (h *InvoiceHandler) InvoiceQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.qr.GenerateInvoiceQR(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, services.ErrInvoiceNotFound) {
		services.SendErrorResponse(w, "Invoice not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		log.Printf("[INVOICE] QR generation failed: %v", err)
		services.SendErrorResponse(w, "Failed to generate QR code", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// ListCustomers returns the customers offered by the invoice forms
// @Summary List customers
// @Tags customers
// @Produce json
// @Security SessionCookie
// @Success 200 {array} models.CustomerField
// @Failure 500 {object} services.ErrorResponse
// @Router /dashboard/customers [get]
func (h *InvoiceHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}
