package router_test

import (
	"net/http"
	"testing"

	"github.com/tbeaudouin05/braintree-trellai/api/config"
)

// Remote HTTP integration tests against a deployed instance at INTEGRATION_BASE_URL.

func remoteBaseURL(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}
	cfg, err := config.LoadConfig()
	if err != nil || cfg.IntegrationBaseURL == "" {
		t.Skip("INTEGRATION_BASE_URL not configured")
	}
	config.CheckNotProduction()
	return cfg.IntegrationBaseURL
}

func TestHelloHTTP_Remote_Integration(t *testing.T) {
	base := remoteBaseURL(t)

	resp, err := http.Get(base + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestClientTokenHTTP_Remote_Integration(t *testing.T) {
	base := remoteBaseURL(t)

	status, body := getJSON(t, base+"/clientToken")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
}

func TestCheckoutInvalidBodyHTTP_Remote_Integration(t *testing.T) {
	base := remoteBaseURL(t)

	status, _ := postJSON(t, base+"/checkout", map[string]any{"amount": "not-a-number"})
	if status == http.StatusOK {
		t.Fatalf("expected non-200 for invalid amount, got %d", status)
	}
}

func TestUnknownCustomerHTTP_Remote_Integration(t *testing.T) {
	base := remoteBaseURL(t)

	status, _ := getJSON(t, base+"/customer?customerId="+newCustomerID())
	if status == http.StatusOK {
		t.Fatalf("expected non-200 for unknown customer, got %d", status)
	}
}
