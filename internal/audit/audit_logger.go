package audit

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	InvoiceID string    `json:"invoice_id,omitempty"`
	Customer  string    `json:"customer_id,omitempty"`
	Amount    float64   `json:"amount,omitempty"`
	Status    string    `json:"status"`
	Details   any       `json:"details,omitempty"`
}

// Logger writes one JSON line per invoice mutation
type Logger struct {
	out *log.Logger
}

func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr)
}

func NewLoggerTo(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags)}
}

func (a *Logger) LogMutation(eventType, invoiceID, customerID string, amount float64, status string) {
	a.log(Event{
		EventType: eventType,
		InvoiceID: invoiceID,
		Customer:  customerID,
		Amount:    amount,
		Status:    status,
	})
}

func (a *Logger) LogError(eventType, invoiceID string, err error) {
	a.log(Event{
		EventType: eventType,
		InvoiceID: invoiceID,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *Logger) log(event Event) {
	event.EventID = uuid.New().String()
	event.Timestamp = time.Now().UTC()
	data, _ := json.Marshal(event)
	a.out.Printf("AUDIT: %s", string(data))
}
