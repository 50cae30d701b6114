package braintreegw

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/braintree-go/braintree-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbeaudouin05/braintree-trellai/api/metrics"
	gw "github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway"
)

var tracer = otel.Tracer("github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway")

// Options carries the credentials and transport settings for the SDK handle.
type Options struct {
	Environment string
	MerchantID  string
	PublicKey   string
	PrivateKey  string
	// Timeout bounds each gateway HTTP call. Zero keeps the SDK default client.
	Timeout time.Duration
}

// client is the Braintree SDK-backed implementation of the gateway.
// The SDK handle is safe for concurrent use, so one client serves every request.
type client struct {
	bt      *braintree.Braintree
	metrics *metrics.Metrics
}

// New builds the single SDK handle used for the lifetime of the process.
func New(opts Options, m *metrics.Metrics) (gw.BraintreeGateway, error) {
	env, err := ParseEnvironment(opts.Environment)
	if err != nil {
		return nil, err
	}
	bt := braintree.New(env, opts.MerchantID, opts.PublicKey, opts.PrivateKey)
	if opts.Timeout > 0 {
		bt.HttpClient = &http.Client{Timeout: opts.Timeout}
	}
	return newClient(bt, m), nil
}

func newClient(bt *braintree.Braintree, m *metrics.Metrics) *client {
	return &client{bt: bt, metrics: m}
}

// ParseEnvironment maps a configured tier name onto the SDK environment.
// An empty name selects the sandbox.
func ParseEnvironment(name string) (braintree.Environment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sandbox":
		return braintree.Sandbox, nil
	case "production":
		return braintree.Production, nil
	case "development":
		return braintree.Development, nil
	}
	return braintree.Sandbox, fmt.Errorf("unknown braintree environment %q", name)
}

func (c *client) FindCustomer(ctx context.Context, id string) (*braintree.Customer, error) {
	return call(ctx, c, "customer.find", func(ctx context.Context) (*braintree.Customer, error) {
		return c.bt.Customer().Find(ctx, id)
	})
}

func (c *client) CreateCustomer(ctx context.Context, req *braintree.CustomerRequest) (*braintree.Customer, error) {
	return call(ctx, c, "customer.create", func(ctx context.Context) (*braintree.Customer, error) {
		return c.bt.Customer().Create(ctx, req)
	})
}

func (c *client) GenerateClientToken(ctx context.Context, req *braintree.ClientTokenRequest) (string, error) {
	return call(ctx, c, "client_token.generate", func(ctx context.Context) (string, error) {
		return c.bt.ClientToken().GenerateWithRequest(ctx, req)
	})
}

func (c *client) Sale(ctx context.Context, req *braintree.TransactionRequest) (*braintree.Transaction, error) {
	return call(ctx, c, "transaction.sale", func(ctx context.Context) (*braintree.Transaction, error) {
		return c.bt.Transaction().Create(ctx, req)
	})
}

// SearchTransactions pages through the search result; each page is one gateway call.
// A failed page ends the sequence since later pages cannot be addressed without it.
func (c *client) SearchTransactions(ctx context.Context, customerID string) iter.Seq2[*braintree.Transaction, error] {
	return func(yield func(*braintree.Transaction, error) bool) {
		query := new(braintree.SearchQuery)
		f := query.AddTextField("customer-id")
		f.Is = customerID

		page, err := call(ctx, c, "transaction.search", func(ctx context.Context) (*braintree.TransactionSearchResult, error) {
			return c.bt.Transaction().Search(ctx, query)
		})
		for {
			if err != nil {
				yield(nil, err)
				return
			}
			if page == nil {
				return
			}
			for _, tx := range page.Transactions {
				if !yield(tx, nil) {
					return
				}
			}
			prev := page
			page, err = call(ctx, c, "transaction.search_next", func(ctx context.Context) (*braintree.TransactionSearchResult, error) {
				return c.bt.Transaction().SearchNext(ctx, query, prev)
			})
		}
	}
}

func call[T any](ctx context.Context, c *client, op string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, "braintree."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	v, err := fn(ctx)
	err = translate(err)
	c.metrics.ObserveGateway(op, err, time.Since(start))

	span.SetAttributes(attribute.String("braintree.outcome", metrics.Outcome(err)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return v, err
}

type statusCoder interface {
	StatusCode() int
}

// translate folds SDK failures into the gateway error model: API error responses
// become *gw.ResultError, 404s wrap gw.ErrNotFound, everything else passes through.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var bte *braintree.BraintreeError
	if errors.As(err, &bte) {
		re := &gw.ResultError{
			StatusCode:  bte.StatusCode(),
			Message:     bte.Error(),
			Transaction: bte.Transaction,
		}
		for _, fe := range bte.All() {
			re.Fields = append(re.Fields, gw.FieldError{
				Attribute: fe.Attribute,
				Code:      fe.Code,
				Message:   fe.Message,
			})
		}
		return re
	}
	var sc statusCoder
	if errors.As(err, &sc) && sc.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: %v", gw.ErrNotFound, err)
	}
	return err
}
