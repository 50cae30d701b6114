package app

import (
	"context"
	"errors"
	"testing"

	"github.com/braintree-go/braintree-go"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gw "github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway"
)

func Test_CreateSaleTransaction_ExistingCustomer(t *testing.T) {
	f := &fakeGateway{}
	svc := newTestService(f)

	res, err := svc.CreateSaleTransaction(context.Background(), SaleContext{
		PaymentMethodNonce: "fake-valid-nonce",
		DeviceData:         "dd",
		Customer:           &SaleCustomer{ID: "c1", FirstName: "A"},
		IsExistingCustomer: true,
		Amount:             "10.00",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, f.saleReqs, 1)
	req := f.saleReqs[0]
	assert.Equal(t, "c1", req.CustomerID)
	assert.Nil(t, req.Customer)
	assert.Equal(t, TransactionTypeSale, req.Type)
	assert.Equal(t, "fake-valid-nonce", req.PaymentMethodNonce)
	assert.Equal(t, "dd", req.DeviceData)
	assert.Equal(t, braintree.NewDecimal(1000, 2), req.Amount)
	assert.True(t, req.Options.SubmitForSettlement)
	assert.False(t, req.Options.StoreInVaultOnSuccess)
}

func Test_CreateSaleTransaction_NewCustomer(t *testing.T) {
	f := &fakeGateway{}
	svc := newTestService(f)

	customer := &SaleCustomer{ID: "c2", FirstName: "A", LastName: "B", Email: "a@b.com"}
	_, err := svc.CreateSaleTransaction(context.Background(), SaleContext{
		PaymentMethodNonce: "fake-valid-nonce",
		Customer:           customer,
		Amount:             "5",
	})
	require.NoError(t, err)

	req := f.saleReqs[0]
	assert.Empty(t, req.CustomerID)
	require.NotNil(t, req.Customer)
	assert.Equal(t, &braintree.CustomerRequest{ID: "c2", FirstName: "A", LastName: "B", Email: "a@b.com"}, req.Customer)
	assert.True(t, req.Options.SubmitForSettlement)
}

func Test_CreateSaleTransaction_NoCustomer(t *testing.T) {
	f := &fakeGateway{}
	svc := newTestService(f)

	_, err := svc.CreateSaleTransaction(context.Background(), SaleContext{PaymentMethodNonce: "fake-valid-nonce", Amount: "1.50"})
	require.NoError(t, err)

	req := f.saleReqs[0]
	assert.Empty(t, req.CustomerID)
	assert.Nil(t, req.Customer)
	assert.True(t, req.Options.SubmitForSettlement)
	assert.Equal(t, braintree.NewDecimal(150, 2), req.Amount)
}

func Test_CreateSaleTransaction_VaultFlowFlag(t *testing.T) {
	for _, vault := range []bool{true, false} {
		f := &fakeGateway{}
		svc := newTestService(f)

		_, err := svc.CreateSaleTransaction(context.Background(), SaleContext{PaymentMethodNonce: "n", IsVaultFlow: vault, Amount: "1"})
		require.NoError(t, err)
		assert.Equal(t, vault, f.saleReqs[0].Options.StoreInVaultOnSuccess)
		assert.True(t, f.saleReqs[0].Options.SubmitForSettlement)
	}
}

func Test_CreateSaleTransaction_DeclineIsARejectedResult(t *testing.T) {
	declined := &braintree.Transaction{Id: "t-declined", Status: "processor_declined"}
	f := &fakeGateway{saleErr: &gw.ResultError{StatusCode: 422, Message: "Do Not Honor", Transaction: declined}}
	svc := newTestService(f)

	res, err := svc.CreateSaleTransaction(context.Background(), SaleContext{PaymentMethodNonce: "fake-processor-declined-visa-nonce", Amount: "2000"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.DeepErrors())
	assert.Same(t, declined, res.Transaction)
	assert.Equal(t, "Do Not Honor", res.Message)
	assert.Equal(t, KindRejected, res.Kind())
}

func Test_CreateSaleTransaction_InvalidAmountNeverReachesGateway(t *testing.T) {
	f := &fakeGateway{}
	svc := newTestService(f)

	_, err := svc.CreateSaleTransaction(context.Background(), SaleContext{PaymentMethodNonce: "n", Amount: "ten"})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Empty(t, f.saleReqs)
}

func vaultedCustomer() *braintree.Customer {
	return &braintree.Customer{
		Id: "c1",
		PayPalAccounts: &braintree.PayPalAccounts{PayPalAccount: []*braintree.PayPalAccount{
			{Token: "pp-old", Email: "a@b.com"},
			{Token: "pp-default", Email: "a@b.com", Default: true},
		}},
	}
}

func Test_PurchaseUsingVaultedPMT_UsesDefaultPayPalToken(t *testing.T) {
	f := &fakeGateway{custs: map[string]*braintree.Customer{"c1": vaultedCustomer()}}
	svc := newTestService(f)

	res, err := svc.PurchaseUsingVaultedPMT(context.Background(), VaultedPurchase{CustomerID: "c1", Amount: "12.34"})
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, f.saleReqs, 1)
	req := f.saleReqs[0]
	assert.Equal(t, "pp-default", req.PaymentMethodToken)
	assert.Equal(t, braintree.NewDecimal(1234, 2), req.Amount)
	assert.Equal(t, TransactionTypeSale, req.Type)
	assert.Empty(t, req.PaymentMethodNonce)
	assert.Empty(t, req.CustomerID)
}

func Test_PurchaseUsingVaultedPMT_NoCustomerFound(t *testing.T) {
	f := &fakeGateway{custs: map[string]*braintree.Customer{}}
	svc := newTestService(f)

	_, err := svc.PurchaseUsingVaultedPMT(context.Background(), VaultedPurchase{CustomerID: "missing", Amount: "1"})
	assert.ErrorIs(t, err, ErrNoCustomerFound)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Empty(t, f.saleReqs)

	f = &fakeGateway{custs: map[string]*braintree.Customer{"nil": nil}}
	svc = newTestService(f)
	_, err = svc.PurchaseUsingVaultedPMT(context.Background(), VaultedPurchase{CustomerID: "nil", Amount: "1"})
	assert.ErrorIs(t, err, ErrNoCustomerFound)
}

func Test_PurchaseUsingVaultedPMT_NoDefaultPaymentMethod(t *testing.T) {
	cust := vaultedCustomer()
	cust.PayPalAccounts.PayPalAccount[1].Default = false
	// A default card must not be picked up: only PayPal accounts are considered.
	cust.CreditCards = &braintree.CreditCards{CreditCard: []*braintree.CreditCard{{Token: "card-default", Default: true}}}
	f := &fakeGateway{custs: map[string]*braintree.Customer{"c1": cust}}
	svc := newTestService(f)

	_, err := svc.PurchaseUsingVaultedPMT(context.Background(), VaultedPurchase{CustomerID: "c1", Amount: "1"})
	assert.ErrorIs(t, err, ErrNoDefaultPaymentMethod)
	assert.Equal(t, KindRejected, KindOf(err))
	assert.Empty(t, f.saleReqs)
}

func Test_DefaultPayPalAccount_PicksLastDefault(t *testing.T) {
	cust := vaultedCustomer()
	cust.PayPalAccounts.PayPalAccount = append(cust.PayPalAccounts.PayPalAccount, &braintree.PayPalAccount{Token: "pp-newer", Default: true})
	assert.Equal(t, "pp-newer", DefaultPayPalAccount(cust).Token)

	assert.Nil(t, DefaultPayPalAccount(nil))
	assert.Nil(t, DefaultPayPalAccount(&braintree.Customer{}))
}

func Test_Amount_UnmarshalAndConvert(t *testing.T) {
	var sale SaleContext
	require.NoError(t, json.Unmarshal([]byte(`{"amount":10}`), &sale))
	assert.Equal(t, Amount("10"), sale.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"10.50"}`), &sale))
	assert.Equal(t, Amount("10.50"), sale.Amount)

	var empty VaultedPurchase
	require.NoError(t, json.Unmarshal([]byte(`{"customerId":"c1","amount":null}`), &empty))
	assert.Equal(t, Amount(""), empty.Amount)

	assert.Error(t, json.Unmarshal([]byte(`{"amount":true}`), &sale))

	d, err := Amount("10.50").Decimal()
	require.NoError(t, err)
	assert.Equal(t, braintree.NewDecimal(1050, 2), d)

	d, err = Amount("1e2").Decimal()
	require.NoError(t, err)
	assert.Equal(t, braintree.NewDecimal(100, 0), d)

	d, err = Amount("").Decimal()
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = Amount("12,00").Decimal()
	assert.ErrorIs(t, err, ErrBadRequest)

	// Unscaled values past int64 must fail instead of wrapping around.
	for _, a := range []Amount{"184467440737095526.16", "92233720368547758.08", "1e30"} {
		_, err = Amount(a).Decimal()
		assert.ErrorIs(t, err, ErrBadRequest, string(a))
	}

	d, err = Amount("92233720368547758.07").Decimal()
	require.NoError(t, err)
	assert.Equal(t, braintree.NewDecimal(9223372036854775807, 2), d)
}

func Test_CreateSaleTransaction_ExistingCustomerWithoutIDNeverCharges(t *testing.T) {
	cases := map[string]*SaleCustomer{
		"no customer": nil,
		"empty id":    {FirstName: "Ann"},
	}
	for name, cust := range cases {
		t.Run(name, func(t *testing.T) {
			f := &fakeGateway{}
			svc := newTestService(f)

			_, err := svc.CreateSaleTransaction(context.Background(), SaleContext{
				PaymentMethodNonce: "n",
				IsExistingCustomer: true,
				Customer:           cust,
				Amount:             "1",
			})
			assert.ErrorIs(t, err, ErrBadRequest)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Empty(t, f.saleReqs)
		})
	}
}

func Test_CreateSaleTransaction_OverflowingAmountNeverCharges(t *testing.T) {
	f := &fakeGateway{}
	svc := newTestService(f)

	_, err := svc.CreateSaleTransaction(context.Background(), SaleContext{PaymentMethodNonce: "n", Amount: "184467440737095526.16"})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Empty(t, f.saleReqs)
}

func Test_PurchaseUsingVaultedPMT_LookupFailureResultIsNotMissingCustomer(t *testing.T) {
	fields := []gw.FieldError{{Attribute: "id", Code: "91610", Message: "Customer ID is invalid."}}
	f := &fakeGateway{findErr: &gw.ResultError{StatusCode: 422, Message: "Customer ID is invalid.", Fields: fields}}
	svc := newTestService(f)

	res, err := svc.PurchaseUsingVaultedPMT(context.Background(), VaultedPurchase{CustomerID: "bad id", Amount: "1"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, fields, res.DeepErrors())
	assert.Equal(t, KindValidation, res.Kind())
	assert.Empty(t, f.saleReqs)
}

func Test_PurchaseUsingVaultedPMT_TransportFailureIsUnexpected(t *testing.T) {
	f := &fakeGateway{findErr: errors.New("connection reset")}
	svc := newTestService(f)

	_, err := svc.PurchaseUsingVaultedPMT(context.Background(), VaultedPurchase{CustomerID: "c1", Amount: "1"})
	assert.ErrorIs(t, err, ErrGateway)
	assert.Equal(t, KindUnexpected, KindOf(err))
	assert.Empty(t, f.saleReqs)
}
