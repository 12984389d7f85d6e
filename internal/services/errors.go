package services

import "errors"

const (
	msgCreateFailed = "Database Error: Failed to Create Invoice."
	msgUpdateFailed = "Database Error: Failed to Update Invoice."
	msgDeleteFailed = "Failed to Delete Invoice"
	msgFetchFailed  = "Database Error: Failed to Fetch Invoices."
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// DatabaseError is returned when a statement fails. Error() is the message
// shown to the user; the driver error stays reachable through Unwrap.
type DatabaseError struct {
	Message string
	Err     error
}

func (e *DatabaseError) Error() string { return e.Message }

func (e *DatabaseError) Unwrap() error { return e.Err }

// AuthErrorType classifies a failed sign-in
type AuthErrorType string

const (
	CredentialsSignin AuthErrorType = "CredentialsSignin"
	InvalidProvider   AuthErrorType = "InvalidProvider"
	Configuration     AuthErrorType = "Configuration"
)

// AuthError is raised by the credentials provider for every sign-in failure
// it recognises. Anything else coming out of SignIn is not an AuthError.
type AuthError struct {
	Type AuthErrorType
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return string(e.Type) + ": " + e.Err.Error()
	}
	return string(e.Type)
}

func (e *AuthError) Unwrap() error { return e.Err }
