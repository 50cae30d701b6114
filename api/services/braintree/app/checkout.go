package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/braintree-go/braintree-go"

	gw "github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway"
)

// CreateSaleTransaction authorizes and settles in one call. The sale is tied to an
// existing customer, creates a new customer alongside it, or carries no customer at
// all, depending on IsExistingCustomer and whether a customer payload was given.
func (s serviceImpl) CreateSaleTransaction(ctx context.Context, sale SaleContext) (Result, error) {
	amount, err := sale.Amount.Decimal()
	if err != nil {
		return Result{}, err
	}
	req := &braintree.TransactionRequest{
		Type:               TransactionTypeSale,
		Amount:             amount,
		PaymentMethodNonce: sale.PaymentMethodNonce,
		DeviceData:         sale.DeviceData,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	}

	switch {
	case sale.IsExistingCustomer:
		if sale.Customer == nil || sale.Customer.ID == "" {
			return Result{}, fmt.Errorf("%w: existing customer sale without customer id", ErrBadRequest)
		}
		s.log.Info("creating transaction for existing customer", "customer_id", sale.Customer.ID)
		req.CustomerID = sale.Customer.ID
	case sale.Customer != nil:
		s.log.Info("creating transaction and customer", "customer_id", sale.Customer.ID)
		req.Customer = sale.Customer.request()
	default:
		s.log.Info("creating transaction not associated with a customer")
	}

	if sale.IsVaultFlow {
		req.Options.StoreInVaultOnSuccess = true
	}

	tx, err := s.gw.Sale(context.WithoutCancel(ctx), req)
	if err != nil {
		return failure(err, "sale")
	}
	return Result{Success: true, Transaction: tx}, nil
}

// PurchaseUsingVaultedPMT charges the customer's default PayPal account. Only PayPal
// accounts are searched: vaulted cards and other method types are never used here,
// even when one of them is the customer's default.
func (s serviceImpl) PurchaseUsingVaultedPMT(ctx context.Context, purchase VaultedPurchase) (Result, error) {
	amount, err := purchase.Amount.Decimal()
	if err != nil {
		return Result{}, err
	}

	cust, err := s.gw.FindCustomer(ctx, purchase.CustomerID)
	if err != nil {
		if errors.Is(err, gw.ErrNotFound) {
			return Result{}, fmt.Errorf("%w: %q", ErrNoCustomerFound, purchase.CustomerID)
		}
		return failure(err, "find customer")
	}
	if cust == nil {
		return Result{}, fmt.Errorf("%w: %q", ErrNoCustomerFound, purchase.CustomerID)
	}

	method := DefaultPayPalAccount(cust)
	if method == nil {
		return Result{}, fmt.Errorf("%w: customer %q", ErrNoDefaultPaymentMethod, purchase.CustomerID)
	}
	s.log.Info("using default paypal account", "customer_id", purchase.CustomerID, "payment_method_token", method.Token)

	tx, err := s.gw.Sale(context.WithoutCancel(ctx), &braintree.TransactionRequest{
		Type:               TransactionTypeSale,
		Amount:             amount,
		PaymentMethodToken: method.Token,
	})
	if err != nil {
		return failure(err, "sale")
	}
	return Result{Success: true, Transaction: tx}, nil
}

// DefaultPayPalAccount returns the last PayPal account flagged default, or nil.
func DefaultPayPalAccount(cust *braintree.Customer) *braintree.PayPalAccount {
	if cust == nil || cust.PayPalAccounts == nil {
		return nil
	}
	var found *braintree.PayPalAccount
	for _, acct := range cust.PayPalAccounts.PayPalAccount {
		if acct != nil && acct.Default {
			found = acct
		}
	}
	return found
}
