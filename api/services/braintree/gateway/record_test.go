package gateway

import (
	"testing"
	"time"

	"github.com/braintree-go/braintree-go"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAccount struct {
	XMLName string `xml:"paypal-account"`
	Token   string `xml:"token"`
	Default bool   `xml:"default"`
}

type testAccounts struct {
	XMLName string         `xml:"paypal-accounts"`
	Account []*testAccount `xml:"paypal-account"`
}

type Meta struct {
	Source string `xml:"source"`
}

type testRecord struct {
	XMLName   string            `xml:"customer"`
	Id        string            `xml:"id"`
	FirstName string            `xml:"first-name,omitempty"`
	Kind      string            `xml:"type,attr"`
	Nested    string            `xml:"details>device_session_id"`
	Accounts  *testAccounts     `xml:"paypal-accounts,omitempty"`
	Empty     *testAccounts     `xml:"credit-cards,omitempty"`
	CreatedAt *time.Time        `xml:"created-at"`
	Fields    map[string]string `xml:"custom-fields"`
	Skipped   string            `xml:"-"`
	Untagged  string
	hidden    string
	Meta
}

func Test_Record_UsesGatewayKeyNames(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := &testRecord{
		Id:        "c1",
		FirstName: "Ann",
		Kind:      "k",
		Nested:    "dev",
		Accounts:  &testAccounts{Account: []*testAccount{{Token: "pp1", Default: true}}},
		CreatedAt: &created,
		Fields:    map[string]string{"plan": "gold"},
		Skipped:   "x",
		Untagged:  "u",
		hidden:    "h",
		Meta:      Meta{Source: "api"},
	}

	b, err := json.Marshal(Record(rec))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "c1",
		"firstName": "Ann",
		"type": "k",
		"deviceSessionId": "dev",
		"paypalAccounts": [{"token": "pp1", "default": true}],
		"creditCards": null,
		"createdAt": "2024-05-01T12:00:00Z",
		"customFields": {"plan": "gold"},
		"untagged": "u",
		"source": "api"
	}`, string(b))
}

func Test_Record_EmptyListWrapperIsEmptyArray(t *testing.T) {
	got := Record(&testRecord{Accounts: &testAccounts{}})
	m, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{}, m["paypalAccounts"])
}

func Test_Record_Nil(t *testing.T) {
	assert.Nil(t, Record(nil))
	var c *braintree.Customer
	assert.Nil(t, Record(c))
}

func Test_Record_SDKCustomer(t *testing.T) {
	got, ok := Record(&braintree.Customer{Id: "c1", FirstName: "Ann"}).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "c1", got["id"])
	assert.Equal(t, "Ann", got["firstName"])
	assert.NotContains(t, got, "Id")
	assert.NotContains(t, got, "FirstName")
	assert.NotContains(t, got, "XMLName")
}

func Test_Record_SDKTransactionAmount(t *testing.T) {
	got, ok := Record(&braintree.Transaction{Id: "tx1", Amount: braintree.NewDecimal(1050, 2)}).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tx1", got["id"])

	b, err := json.Marshal(got["amount"])
	require.NoError(t, err)
	assert.Equal(t, `"10.50"`, string(b))
}

func Test_camel(t *testing.T) {
	assert.Equal(t, "firstName", camel("first-name"))
	assert.Equal(t, "paypalAccounts", camel("paypal-accounts"))
	assert.Equal(t, "deviceSessionId", camel("device_session_id"))
	assert.Equal(t, "id", camel("Id"))
	assert.Equal(t, "", camel(""))
}
