package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"invoice-portal/logger"
)

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d for %s", e.Code, e.Path)
}

// HTTPClient talks to the upstream order API. It implements invoice.API.
// The upstream wraps responses in either {data:{data:T}} or {data:T};
// both envelopes are tolerated.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient builds a client for baseURL. timeout <= 0 means no
// client-side timeout; a hung upstream request then stalls the caller,
// which is the accepted behavior for this dependency.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := &http.Client{}
	if timeout > 0 {
		c.Timeout = timeout
	}
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    c,
	}
}

func (c *HTTPClient) GetOrderByTransaksi(ctx context.Context, noTransaksi string) (map[string]any, error) {
	v, err := c.getJSON(ctx, "/api/orders/transaksi/"+url.PathEscape(noTransaksi))
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("order payload is not an object")
	}
	return m, nil
}

func (c *HTTPClient) GetOrderDetailsByOrderID(ctx context.Context, orderID string) ([]any, error) {
	v, err := c.getJSON(ctx, "/api/orders/"+url.PathEscape(orderID)+"/details")
	if err != nil {
		return nil, err
	}
	return asSlice(v), nil
}

func (c *HTTPClient) GetPaymentsByTransaksi(ctx context.Context, noTransaksi string) ([]any, error) {
	v, err := c.getJSON(ctx, "/api/payments/transaksi/"+url.PathEscape(noTransaksi))
	if err != nil {
		return nil, err
	}
	return asSlice(v), nil
}

func (c *HTTPClient) GetCustomerByID(ctx context.Context, customerID string) (map[string]any, error) {
	v, err := c.getJSON(ctx, "/api/customers/"+url.PathEscape(customerID))
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("customer payload is not an object")
	}
	return m, nil
}

func (c *HTTPClient) GetInvoiceByToken(ctx context.Context, token string) (map[string]any, error) {
	v, err := c.getJSON(ctx, "/api/invoices/token/"+url.PathEscape(token))
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invoice payload is not an object")
	}
	return m, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Path: path}
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	logger.L.WithField("path", path).Debug("upstream fetch ok")
	return unwrapData(body), nil
}

// unwrapData peels the {data: ...} envelope, once or twice, so callers
// always see the innermost payload.
func unwrapData(v any) any {
	for i := 0; i < 2; i++ {
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		inner, ok := m["data"]
		if !ok {
			return v
		}
		v = inner
	}
	return v
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
