package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mohdnadeem3849/kubecart/internal/domain"
)

// ErrProductNotFound signals that the catalog no longer knows the product.
// Distinct from transport failures so checkout can report which line is stale.
var ErrProductNotFound = errors.New("product not found in catalog")

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[*domain.ProductSnapshot]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	breaker := gobreaker.NewCircuitBreaker[*domain.ProductSnapshot](gobreaker.Settings{
		Name:        "catalog",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing product is a valid catalog answer, not a catalog outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrProductNotFound)
		},
	})

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		timeout: timeout,
		breaker: breaker,
	}
}

// Resolve looks up the product's current name, price and image in the catalog.
// The call is bounded by the client timeout; a slow or unreachable catalog
// fails the lookup rather than blocking the caller.
func (c *Client) Resolve(ctx context.Context, productID int64) (*domain.ProductSnapshot, error) {
	return c.breaker.Execute(func() (*domain.ProductSnapshot, error) {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		url := fmt.Sprintf("%s/api/catalog/products/%d", c.baseURL, productID)
		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create catalog request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog request for product %d: %w", productID, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog returned status %d for product %d", resp.StatusCode, productID)
		}

		var product domain.ProductSnapshot
		if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
			return nil, fmt.Errorf("decode catalog response: %w", err)
		}

		return &product, nil
	})
}
