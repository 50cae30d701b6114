package app

import (
	"errors"

	gw "github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway"
)

// Typed errors for the Braintree app layer. These enable HTTP mapping without
// relying on SDK-specific error types at the transport layer.
var (
	// ErrBadRequest indicates caller input that cannot be sent to the gateway at all.
	ErrBadRequest = errors.New("bad request")
	// ErrGateway indicates an unexpected failure talking to the gateway (network, auth, decoding).
	ErrGateway = errors.New("gateway error")
	// ErrNoCustomerFound indicates a vaulted purchase for a customer id the gateway does not know.
	ErrNoCustomerFound = errors.New("no customer found")
	// ErrNoDefaultPaymentMethod indicates the customer has no PayPal account flagged default.
	ErrNoDefaultPaymentMethod = errors.New("no default payment method")
)

// Kind is the failure category used to pick an HTTP status.
type Kind string

const (
	// KindValidation covers caller input rejected field by field.
	KindValidation Kind = "validation"
	// KindRejected covers processor declines and gateway rejections without field errors.
	KindRejected Kind = "rejected"
	// KindNotFound covers lookups of ids the gateway has no record of.
	KindNotFound Kind = "not_found"
	// KindUnexpected covers transport, authentication and any other failure.
	KindUnexpected Kind = "unexpected"
)

// KindOf classifies an error returned by Service.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrBadRequest):
		return KindValidation
	case errors.Is(err, ErrNoCustomerFound), errors.Is(err, gw.ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrNoDefaultPaymentMethod):
		return KindRejected
	}
	if re, ok := gw.AsResultError(err); ok {
		if len(re.Fields) > 0 {
			return KindValidation
		}
		return KindRejected
	}
	return KindUnexpected
}
