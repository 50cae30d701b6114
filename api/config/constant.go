package config

import (
	"log"
	"strings"
)

const (
	// EnvSandbox is the Braintree tier used when none is configured.
	EnvSandbox = "sandbox"
	// EnvProduction is the live Braintree tier; real money moves there.
	EnvProduction = "production"

	// StatusModeLegacy answers every failure with 500, as existing callers expect.
	StatusModeLegacy = "legacy"
	// StatusModeDifferentiated answers 400 validation, 402 rejected, 404 not found, 502 unexpected.
	StatusModeDifferentiated = "differentiated"
)

// CheckNotProduction aborts immediately if the configured Braintree tier is production.
// This should be called at the start of any test that talks to the gateway.
func CheckNotProduction() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if strings.EqualFold(cfg.BraintreeEnvironment, EnvProduction) {
		log.Fatalf("Tests aborted: BRAINTREE_ENVIRONMENT is %s", EnvProduction)
	}
}
