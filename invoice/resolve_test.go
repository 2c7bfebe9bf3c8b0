package invoice

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI stubs the upstream boundary; nil funcs fail the call.
type fakeAPI struct {
	orderByTransaksi  func(string) (map[string]any, error)
	detailsByOrderID  func(string) ([]any, error)
	paymentsBy        func(string) ([]any, error)
	customerByID      func(string) (map[string]any, error)
	invoiceByToken    func(string) (map[string]any, error)
	tokenCalls        int
	customerCalls     int
	detailsCalls      int
	orderCalls        int
	paymentsCallCount int
}

func (f *fakeAPI) GetOrderByTransaksi(_ context.Context, no string) (map[string]any, error) {
	f.orderCalls++
	if f.orderByTransaksi == nil {
		return nil, errors.New("not stubbed")
	}
	return f.orderByTransaksi(no)
}

func (f *fakeAPI) GetOrderDetailsByOrderID(_ context.Context, id string) ([]any, error) {
	f.detailsCalls++
	if f.detailsByOrderID == nil {
		return nil, errors.New("not stubbed")
	}
	return f.detailsByOrderID(id)
}

func (f *fakeAPI) GetPaymentsByTransaksi(_ context.Context, no string) ([]any, error) {
	f.paymentsCallCount++
	if f.paymentsBy == nil {
		return nil, errors.New("not stubbed")
	}
	return f.paymentsBy(no)
}

func (f *fakeAPI) GetCustomerByID(_ context.Context, id string) (map[string]any, error) {
	f.customerCalls++
	if f.customerByID == nil {
		return nil, errors.New("not stubbed")
	}
	return f.customerByID(id)
}

func (f *fakeAPI) GetInvoiceByToken(_ context.Context, token string) (map[string]any, error) {
	f.tokenCalls++
	if f.invoiceByToken == nil {
		return nil, errors.New("not stubbed")
	}
	return f.invoiceByToken(token)
}

func encodeBundle(t *testing.T, bundle string) string {
	t.Helper()
	return base64.RawURLEncoding.EncodeToString([]byte(bundle))
}

func TestStaticPayloadWinsOverToken(t *testing.T) {
	api := &fakeAPI{
		invoiceByToken: func(string) (map[string]any, error) {
			return map[string]any{"order": map[string]any{}}, nil
		},
	}
	payload := encodeBundle(t, `{"order":{"no_transaksi":"TRX-9"},"order_details":[],"payments":[]}`)

	res := Resolve(context.Background(), RouteParams{StaticPayload: payload, Token: "tok"}, api, nil)

	assert.Equal(t, StrategyStatic, res.Strategy)
	assert.Equal(t, "TRX-9", res.Order["no_transaksi"])
	assert.Zero(t, api.tokenCalls, "token path must not be invoked when static payload decodes")
}

func TestInvalidStaticPayloadFallsThroughToToken(t *testing.T) {
	api := &fakeAPI{
		invoiceByToken: func(string) (map[string]any, error) {
			return map[string]any{
				"order":         map[string]any{"no_transaksi": "TRX-10"},
				"order_details": []any{map[string]any{"name": "x"}},
				"payments":      []any{},
			}, nil
		},
	}

	res := Resolve(context.Background(), RouteParams{StaticPayload: "%%%not-base64%%%", Token: "tok"}, api, nil)

	assert.Equal(t, StrategyToken, res.Strategy)
	assert.Equal(t, "TRX-10", res.Order["no_transaksi"])
	assert.Equal(t, 1, api.tokenCalls)
	assert.Len(t, res.Details, 1)
}

func TestTransaksiPathSequentialSteps(t *testing.T) {
	api := &fakeAPI{
		orderByTransaksi: func(no string) (map[string]any, error) {
			return map[string]any{
				"id":          42,
				"customer_id": 7,
				"order_items": []any{map[string]any{"name": "embedded"}},
			}, nil
		},
		detailsByOrderID: func(id string) ([]any, error) {
			assert.Equal(t, "42", id)
			return []any{map[string]any{"name": "fetched"}}, nil
		},
		customerByID: func(id string) (map[string]any, error) {
			assert.Equal(t, "7", id)
			return map[string]any{"nama": "Budi"}, nil
		},
		paymentsBy: func(string) ([]any, error) {
			return []any{map[string]any{"amount": 100}}, nil
		},
	}

	var progress [][2]int
	res := Resolve(context.Background(), RouteParams{TransactionNumber: "TRX-11"}, api, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})

	assert.Equal(t, StrategyTransaksi, res.Strategy)
	require.Len(t, res.Details, 2, "embedded and fetched line items are merged")
	assert.Len(t, res.Payments, 1)
	cust, _ := res.Order["customer"].(map[string]any)
	require.NotNil(t, cust)
	assert.Equal(t, "Budi", cust["nama"])
	assert.Equal(t, [][2]int{{1, 4}, {2, 4}, {3, 4}, {4, 4}}, progress)
}

func TestOrderFailureClearsEverything(t *testing.T) {
	api := &fakeAPI{
		orderByTransaksi: func(string) (map[string]any, error) {
			return nil, errors.New("404")
		},
	}

	res := Resolve(context.Background(), RouteParams{TransactionNumber: "TRX-404"}, api, nil)

	assert.Nil(t, res.Order)
	assert.Empty(t, res.Details)
	assert.Empty(t, res.Payments)
	assert.Equal(t, "Order not found for transaksi: TRX-404", res.Message)
	assert.Zero(t, api.detailsCalls)
	assert.Zero(t, api.paymentsCallCount)
}

func TestCustomerFailureDoesNotAbort(t *testing.T) {
	api := &fakeAPI{
		orderByTransaksi: func(string) (map[string]any, error) {
			return map[string]any{"id": 1, "customer_id": 9}, nil
		},
		detailsByOrderID: func(string) ([]any, error) { return []any{}, nil },
		customerByID: func(string) (map[string]any, error) {
			return nil, errors.New("customer service down")
		},
		paymentsBy: func(string) ([]any, error) { return []any{}, nil },
	}

	res := Resolve(context.Background(), RouteParams{TransactionNumber: "TRX-12"}, api, nil)

	assert.Empty(t, res.Message)
	assert.NotNil(t, res.Order)
	_, hasCustomer := res.Order["customer"]
	assert.False(t, hasCustomer)
	assert.Equal(t, 1, api.paymentsCallCount)
}

func TestEmbeddedCustomerSkipsCustomerFetch(t *testing.T) {
	api := &fakeAPI{
		orderByTransaksi: func(string) (map[string]any, error) {
			return map[string]any{
				"id":       1,
				"customer": map[string]any{"nama": "Sari"},
			}, nil
		},
		detailsByOrderID: func(string) ([]any, error) { return []any{}, nil },
		paymentsBy:       func(string) ([]any, error) { return []any{}, nil },
	}

	Resolve(context.Background(), RouteParams{TransactionNumber: "TRX-13"}, api, nil)
	assert.Zero(t, api.customerCalls)
}

func TestNoRouteParams(t *testing.T) {
	res := Resolve(context.Background(), RouteParams{}, &fakeAPI{}, nil)
	assert.Equal(t, StrategyNone, res.Strategy)
	assert.Equal(t, "No transaction specified.", res.Message)
	assert.NotNil(t, res.Details)
	assert.NotNil(t, res.Payments)
}

func TestStaticProgressTotal(t *testing.T) {
	payload := encodeBundle(t, `{"order":{"no_transaksi":"TRX-14"}}`)
	var totals []int
	Resolve(context.Background(), RouteParams{StaticPayload: payload}, &fakeAPI{}, func(done, total int) {
		totals = append(totals, total)
	})
	require.NotEmpty(t, totals)
	for _, total := range totals {
		assert.Equal(t, 3, total)
	}
}
