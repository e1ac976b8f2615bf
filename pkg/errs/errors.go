package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
)

var (
	ErrInternalServer       = errors.New("Internal server error")
	ErrNotFound             = errors.New("Resource not found")
	ErrMissingChargeFields  = errors.New("Missing required fields: transaksi_id, amount, customer_name")
	ErrGatewayNotConfigured = errors.New("Payment gateway not configured")
	ErrCreateQris           = errors.New("Failed to create QRIS")
	ErrServerConfiguration  = errors.New("Server configuration error")
	ErrInvalidSignature     = errors.New("Invalid signature")
	ErrUpdatePaymentStatus  = errors.New("Failed to update payment status")
)

var errorMap = map[error]int{
	ErrInternalServer:       ErrStatusInternalServer,
	ErrNotFound:             ErrStatusNotFound,
	ErrMissingChargeFields:  ErrStatusClient,
	ErrGatewayNotConfigured: ErrStatusInternalServer,
	ErrCreateQris:           ErrStatusClient,
	ErrServerConfiguration:  ErrStatusInternalServer,
	ErrInvalidSignature:     ErrStatusUnauthorized,
	ErrUpdatePaymentStatus:  ErrStatusInternalServer,
}

// Error attaches diagnostic text to one of the sentinel errors above.
type Error struct {
	Err     error
	Details string
}

func (e *Error) Error() string {
	if e.Details == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Details
}

func (e *Error) Unwrap() error {
	return e.Err
}

func WithDetails(err error, details string) error {
	return &Error{Err: err, Details: details}
}

// Known returns the sentinel err wraps, or nil for unexpected errors.
func Known(err error) error {
	for known := range errorMap {
		if errors.Is(err, known) {
			return known
		}
	}
	return nil
}

func GetErrorStatusCode(err error) int {
	known := Known(err)
	if known == nil {
		return errorMap[ErrInternalServer]
	}
	return errorMap[known]
}

// GetErrorDetails returns the details carried by err. Unexpected errors
// report their own text so callers can diagnose them.
func GetErrorDetails(err error) string {
	var detailed *Error
	if errors.As(err, &detailed) {
		return detailed.Details
	}
	if Known(err) == nil {
		return err.Error()
	}
	return ""
}
