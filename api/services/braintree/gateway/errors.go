package gateway

import (
	"errors"
	"fmt"

	"github.com/braintree-go/braintree-go"
)

// ErrNotFound indicates the gateway has no record for the requested id.
var ErrNotFound = errors.New("not found")

// FieldError is a single field-level ("deep") validation error reported by the gateway.
type FieldError struct {
	Attribute string `json:"attribute"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// ResultError means the gateway processed the call and answered with a failure
// result instead of a record. Fields holds the deep validation errors; when it is
// empty the failure is a processor or gateway rejection and Transaction, if set,
// is the declined transaction.
type ResultError struct {
	StatusCode  int
	Message     string
	Fields      []FieldError
	Transaction *braintree.Transaction
}

func (e *ResultError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s (%d field errors)", e.Message, len(e.Fields))
	}
	return e.Message
}

// AsResultError unwraps err into a *ResultError when the gateway answered with one.
func AsResultError(err error) (*ResultError, bool) {
	var re *ResultError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
