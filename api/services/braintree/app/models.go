package app

import (
	"bytes"
	"fmt"

	"github.com/braintree-go/braintree-go"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	gw "github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway"
)

// TransactionTypeSale is the only transaction type this service creates.
const TransactionTypeSale = "sale"

// Result mirrors the gateway's result object. Exactly one of Customer, Transaction
// or ClientToken is set on success. On failure Errors carries the deep validation
// errors; when Errors is empty the call was rejected and Transaction, if present,
// is the declined transaction.
type Result struct {
	Success     bool                   `json:"success"`
	Customer    *braintree.Customer    `json:"customer,omitempty"`
	Transaction *braintree.Transaction `json:"transaction,omitempty"`
	ClientToken string                 `json:"clientToken,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Errors      []gw.FieldError        `json:"errors,omitempty"`
}

// MarshalJSON renders Customer and Transaction with the gateway's own key names.
func (r Result) MarshalJSON() ([]byte, error) {
	type view struct {
		Success     bool            `json:"success"`
		Customer    any             `json:"customer,omitempty"`
		Transaction any             `json:"transaction,omitempty"`
		ClientToken string          `json:"clientToken,omitempty"`
		Message     string          `json:"message,omitempty"`
		Errors      []gw.FieldError `json:"errors,omitempty"`
	}
	out := view{Success: r.Success, ClientToken: r.ClientToken, Message: r.Message, Errors: r.Errors}
	if r.Customer != nil {
		out.Customer = gw.Record(r.Customer)
	}
	if r.Transaction != nil {
		out.Transaction = gw.Record(r.Transaction)
	}
	return json.Marshal(out)
}

// DeepErrors returns the field-level validation errors carried by a failed result.
func (r Result) DeepErrors() []gw.FieldError { return r.Errors }

// Kind reports the failure category of an unsuccessful result, or "" on success.
func (r Result) Kind() Kind {
	switch {
	case r.Success:
		return ""
	case len(r.Errors) > 0:
		return KindValidation
	default:
		return KindRejected
	}
}

// CustomerFields is everything a customer create is allowed to send to the gateway.
// Other caller-supplied fields are dropped when the request is decoded.
type CustomerFields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	ID        string `json:"id"`
}

// ClientTokenOptions scopes a client token. An empty CustomerID issues an unscoped token.
type ClientTokenOptions struct {
	CustomerID string `json:"customerId,omitempty"`
}

// SaleCustomer is the customer payload accepted with a sale. For an existing customer
// only ID is used; otherwise the whole payload creates the customer with the sale.
type SaleCustomer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Fax       string `json:"fax"`
	Website   string `json:"website"`
}

// SaleContext is the checkout request.
type SaleContext struct {
	PaymentMethodNonce string        `json:"paymentMethodNonce"`
	DeviceData         string        `json:"deviceData"`
	IsVaultFlow        bool          `json:"isVaultFlow"`
	Customer           *SaleCustomer `json:"customer"`
	IsExistingCustomer bool          `json:"isExistingCustomer"`
	Amount             Amount        `json:"amount" validate:"omitempty,numeric"`
}

// VaultedPurchase charges the customer's default PayPal account.
type VaultedPurchase struct {
	CustomerID string `json:"customerId"`
	Amount     Amount `json:"amount" validate:"omitempty,numeric"`
}

// Amount is a decimal money amount as sent by callers, either as a JSON string
// ("10.00") or a JSON number (10). The literal text is kept so no precision is lost.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// Decimal converts the amount for the SDK. An empty amount yields nil so the
// gateway reports the missing amount itself.
func (a Amount) Decimal() (*braintree.Decimal, error) {
	if a == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(string(a))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid amount %q", ErrBadRequest, string(a))
	}
	var scale int32
	if d.Exponent() < 0 {
		scale = -d.Exponent()
	}
	shifted := d.Shift(scale)
	unscaled := shifted.IntPart()
	if !shifted.Equal(decimal.NewFromInt(unscaled)) {
		return nil, fmt.Errorf("%w: amount %q out of range", ErrBadRequest, string(a))
	}
	return braintree.NewDecimal(unscaled, int(scale)), nil
}

func (c SaleCustomer) request() *braintree.CustomerRequest {
	return &braintree.CustomerRequest{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Fax:       c.Fax,
		Website:   c.Website,
	}
}
