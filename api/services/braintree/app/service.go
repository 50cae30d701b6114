package app

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/braintree-go/braintree-go"

	gw "github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway"
)

// Service defines the operations exposed over the Braintree gateway.
// Operations return a Result whenever the gateway answered, successful or not;
// the error return is reserved for failures where no result exists.
type Service interface {
	GetCustomerByID(ctx context.Context, id string) (Result, error)
	CreateCustomer(ctx context.Context, fields CustomerFields) (Result, error)
	GenerateClientToken(ctx context.Context, opts ClientTokenOptions) (Result, error)
	CreateSaleTransaction(ctx context.Context, sale SaleContext) (Result, error)
	PurchaseUsingVaultedPMT(ctx context.Context, purchase VaultedPurchase) (Result, error)
	TransactionsByCustomerID(ctx context.Context, customerID string) iter.Seq2[*braintree.Transaction, error]
}

// serviceImpl is a concrete implementation.
type serviceImpl struct {
	gw  gw.BraintreeGateway
	log *slog.Logger
}

func NewService(g gw.BraintreeGateway, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return serviceImpl{gw: g, log: logger}
}

// GetCustomerByID looks the customer up as-is; the id is not validated locally.
func (s serviceImpl) GetCustomerByID(ctx context.Context, id string) (Result, error) {
	cust, err := s.gw.FindCustomer(ctx, id)
	if err != nil {
		return failure(err, "find customer")
	}
	return Result{Success: true, Customer: cust}, nil
}

// CreateCustomer sends only the five CustomerFields, whatever else the caller supplied.
func (s serviceImpl) CreateCustomer(ctx context.Context, fields CustomerFields) (Result, error) {
	req := &braintree.CustomerRequest{
		ID:        fields.ID,
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		Email:     fields.Email,
		Phone:     fields.Phone,
	}
	cust, err := s.gw.CreateCustomer(context.WithoutCancel(ctx), req)
	if err != nil {
		return failure(err, "create customer")
	}
	return Result{Success: true, Customer: cust}, nil
}

func (s serviceImpl) GenerateClientToken(ctx context.Context, opts ClientTokenOptions) (Result, error) {
	token, err := s.gw.GenerateClientToken(ctx, &braintree.ClientTokenRequest{CustomerID: opts.CustomerID})
	if err != nil {
		return failure(err, "generate client token")
	}
	return Result{Success: true, ClientToken: token}, nil
}

// TransactionsByCustomerID returns a single-use stream of the customer's transactions.
func (s serviceImpl) TransactionsByCustomerID(ctx context.Context, customerID string) iter.Seq2[*braintree.Transaction, error] {
	return gw.Once(s.gw.SearchTransactions(ctx, customerID))
}

// failure turns a gateway error into a failed Result when the gateway answered,
// or into an ErrGateway error otherwise.
func failure(err error, op string) (Result, error) {
	if re, ok := gw.AsResultError(err); ok {
		return Result{
			Success:     false,
			Message:     re.Message,
			Errors:      re.Fields,
			Transaction: re.Transaction,
		}, nil
	}
	return Result{}, fmt.Errorf("%w: %s: %w", ErrGateway, op, err)
}
