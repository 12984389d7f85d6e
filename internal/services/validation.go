package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/acmedash/backend/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	msgSelectCustomer = "please select a customer"
	msgAmountPositive = "Please enter a amount greater than $0"
	msgSelectStatus   = "please select an invoice status"
)

// Per-field messages reported for any failed rule on that field
var invoiceFieldMessages = map[string]string{
	"customerId": msgSelectCustomer,
	"amount":     msgAmountPositive,
	"status":     msgSelectStatus,
}

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// FieldErrors holds the messages for each rejected form field
type FieldErrors map[string][]string

// InvoiceInput is the validated payload of the create and update invoice forms.
// id and date are never taken from the caller.
type InvoiceInput struct {
	CustomerID string               `form:"customerId" validate:"required"`
	Amount     float64              `form:"amount" validate:"finite,gt=0"`
	Status     models.InvoiceStatus `form:"status" validate:"required,oneof=pending paid"`
}

// ListParams are the search and page parameters of the invoice listing
type ListParams struct {
	Query string `form:"query" validate:"max=200"`
	Page  int    `form:"page" validate:"gte=1"`
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	})
	v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return &ValidationHelper{
		validator: v,
	}
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// ParseInvoiceForm coerces the submitted form into an InvoiceInput. Only the
// first value of each key is read. A nil FieldErrors means the input is valid.
func (vh *ValidationHelper) ParseInvoiceForm(form url.Values) (InvoiceInput, FieldErrors) {
	input := InvoiceInput{
		CustomerID: form.Get("customerId"),
		Amount:     coerceNumber(form.Get("amount")),
		Status:     models.InvoiceStatus(form.Get("status")),
	}

	err := vh.validator.Struct(&input)
	if err == nil {
		return input, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return input, FieldErrors{"_": {err.Error()}}
	}

	fieldErrs := FieldErrors{}
	for _, fe := range validationErrs {
		msg, ok := invoiceFieldMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("Field Validation Failed on '%s' tag", fe.Tag())
		}
		fieldErrs[fe.Field()] = append(fieldErrs[fe.Field()], msg)
	}
	return input, fieldErrs
}

// ParseListParams reads query and page from the listing URL. A missing page
// is page 1; anything that is not a positive integer fails validation.
func (vh *ValidationHelper) ParseListParams(values url.Values) (ListParams, error) {
	params := ListParams{Query: values.Get("query"), Page: 1}
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			page = 0
		}
		params.Page = page
	}
	return params, vh.ValidateStruct(&params)
}

// coerceNumber reads blank input as 0 and malformed input as NaN. Both fail
// the amount rules. Hex notation is not a decimal amount and reads as NaN.
func coerceNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	unsigned := strings.TrimLeft(raw, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: message}
	var validationErrs validator.ValidationErrors
	if errors.As(validationErr, &validationErrs) {
		errorResp.Details = make(map[string]string)
		for _, err := range validationErrs {
			errorResp.Details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
		}
	}

	json.NewEncoder(w).Encode(errorResp)
}
