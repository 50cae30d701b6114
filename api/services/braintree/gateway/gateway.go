package gateway

import (
	"context"
	"iter"

	"github.com/braintree-go/braintree-go"
)

//go:generate mockgen -destination=mock/mock_gateway.go -package=mock github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway BraintreeGateway

// BraintreeGateway abstracts the Braintree SDK operations needed by the app layer.
// Requests and records are the SDK's own types; failures follow the error model
// in errors.go so callers never inspect SDK error types directly.
type BraintreeGateway interface {
	FindCustomer(ctx context.Context, id string) (*braintree.Customer, error)
	CreateCustomer(ctx context.Context, req *braintree.CustomerRequest) (*braintree.Customer, error)
	GenerateClientToken(ctx context.Context, req *braintree.ClientTokenRequest) (string, error)
	Sale(ctx context.Context, req *braintree.TransactionRequest) (*braintree.Transaction, error)
	// SearchTransactions streams every transaction recorded against customerID.
	// The sequence ends after the last page or after yielding a page error.
	SearchTransactions(ctx context.Context, customerID string) iter.Seq2[*braintree.Transaction, error]
}
