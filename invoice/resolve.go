package invoice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"invoice-portal/logger"
)

// API is the upstream boundary the resolver fetches raw payloads from.
// Implementations live in the clients package.
type API interface {
	GetOrderByTransaksi(ctx context.Context, noTransaksi string) (map[string]any, error)
	GetOrderDetailsByOrderID(ctx context.Context, orderID string) ([]any, error)
	GetPaymentsByTransaksi(ctx context.Context, noTransaksi string) ([]any, error)
	GetCustomerByID(ctx context.Context, customerID string) (map[string]any, error)
	GetInvoiceByToken(ctx context.Context, token string) (map[string]any, error)
}

// Strategy names the resolution path that produced a Resolution.
type Strategy string

const (
	StrategyStatic    Strategy = "static"
	StrategyToken     Strategy = "token"
	StrategyTransaksi Strategy = "transaksi"
	StrategyNone      Strategy = "none"
)

// Step totals per strategy, used for the progress indicator.
var strategySteps = map[Strategy]int{
	StrategyStatic:    3,
	StrategyToken:     4,
	StrategyTransaksi: 4,
}

// RouteParams are the three possible route shapes of the public invoice
// view. StaticPayload is a base64url JSON bundle for offline/shareable
// links; Token is an opaque invoice-access credential.
type RouteParams struct {
	TransactionNumber string
	Token             string
	StaticPayload     string
}

// ProgressFunc receives {done, total} after each completed step.
type ProgressFunc func(done, total int)

// Resolution is the raw material handed to the normalizer. On total
// failure Order is nil, the sequences are empty and Message carries the
// user-facing explanation.
type Resolution struct {
	Order    map[string]any
	Details  []any
	Payments []any
	Strategy Strategy
	Message  string
}

// Resolve picks the first strategy that succeeds: static payload, then
// token, then transaction number. Decode and fetch failures within a
// strategy fall through to the next one; they never surface as errors.
func Resolve(ctx context.Context, params RouteParams, api API, onProgress ProgressFunc) Resolution {
	if params.StaticPayload != "" {
		if res, ok := resolveStatic(params.StaticPayload, onProgress); ok {
			return res
		}
	}
	if params.Token != "" {
		if res, ok := resolveToken(ctx, params.Token, api, onProgress); ok {
			return res
		}
	}
	if params.TransactionNumber != "" {
		return resolveTransaksi(ctx, params.TransactionNumber, api, onProgress)
	}
	return Resolution{
		Details:  []any{},
		Payments: []any{},
		Strategy: StrategyNone,
		Message:  "No transaction specified.",
	}
}

func resolveStatic(payload string, onProgress ProgressFunc) (Resolution, bool) {
	total := strategySteps[StrategyStatic]

	raw, err := decodeBase64URL(payload)
	if err != nil {
		logger.L.WithError(err).Debug("resolver: static payload decode failed")
		return Resolution{}, false
	}
	var bundle struct {
		Order        map[string]any `json:"order"`
		OrderDetails []any          `json:"order_details"`
		Payments     []any          `json:"payments"`
	}
	if err := json.Unmarshal(raw, &bundle); err != nil || bundle.Order == nil {
		logger.L.WithError(err).Debug("resolver: static payload parse failed")
		return Resolution{}, false
	}
	report(onProgress, 1, total)

	res := Resolution{
		Order:    bundle.Order,
		Details:  emptyIfNil(bundle.OrderDetails),
		Strategy: StrategyStatic,
	}
	report(onProgress, 2, total)

	res.Payments = emptyIfNil(bundle.Payments)
	report(onProgress, 3, total)
	return res, true
}

func resolveToken(ctx context.Context, token string, api API, onProgress ProgressFunc) (Resolution, bool) {
	total := strategySteps[StrategyToken]

	data, err := api.GetInvoiceByToken(ctx, token)
	if err != nil {
		logger.L.WithError(err).Debug("resolver: token lookup failed")
		return Resolution{}, false
	}
	report(onProgress, 1, total)

	order := asMap(data["order"])
	if order == nil {
		// Some backends return the order fields at the top level.
		order = data
	}
	res := Resolution{Order: order, Strategy: StrategyToken}
	report(onProgress, 2, total)

	if s, ok := data["order_details"].([]any); ok {
		res.Details = s
	} else {
		res.Details = []any{}
	}
	report(onProgress, 3, total)

	if s, ok := data["payments"].([]any); ok {
		res.Payments = s
	} else {
		res.Payments = []any{}
	}
	report(onProgress, 4, total)
	return res, true
}

func resolveTransaksi(ctx context.Context, noTransaksi string, api API, onProgress ProgressFunc) Resolution {
	total := strategySteps[StrategyTransaksi]
	res := Resolution{
		Details:  []any{},
		Payments: []any{},
		Strategy: StrategyTransaksi,
	}

	// Step 1: the order itself. This one is load-bearing; without it the
	// whole flow stops and all result sets stay empty.
	order, err := api.GetOrderByTransaksi(ctx, noTransaksi)
	if err != nil || order == nil {
		logger.L.WithError(err).WithField("no_transaksi", noTransaksi).
			Info("resolver: order lookup failed")
		res.Message = fmt.Sprintf("Order not found for transaksi: %s", noTransaksi)
		return res
	}
	res.Order = order
	report(onProgress, 1, total)

	// Step 2: line items, merged with any already embedded on the order.
	res.Details = embeddedDetails(order)
	if id := firstString(order, orderIDKeys); id != "" {
		fetched, err := api.GetOrderDetailsByOrderID(ctx, id)
		if err != nil {
			logger.L.WithError(err).Debug("resolver: order details fetch failed")
		} else {
			res.Details = append(res.Details, fetched...)
		}
	}
	res.Details = emptyIfNil(res.Details)
	report(onProgress, 2, total)

	// Step 3: customer, only when the order lacks an embedded one. A
	// failure here leaves the customer unresolved; normalization copes.
	if _, ok := firstMap(order, customerContainerKeys); !ok {
		if custID := firstString(order, customerIDKey); custID != "" {
			cust, err := api.GetCustomerByID(ctx, custID)
			if err != nil {
				logger.L.WithError(err).Debug("resolver: customer fetch failed")
			} else if cust != nil {
				order["customer"] = cust
			}
		}
	}
	report(onProgress, 3, total)

	// Step 4: payments.
	payments, err := api.GetPaymentsByTransaksi(ctx, noTransaksi)
	if err != nil {
		logger.L.WithError(err).Debug("resolver: payments fetch failed")
	} else {
		res.Payments = emptyIfNil(payments)
	}
	report(onProgress, 4, total)

	return res
}

// decodeBase64URL accepts both raw and padded base64url input.
func decodeBase64URL(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}

func emptyIfNil(s []any) []any {
	if s == nil {
		return []any{}
	}
	return s
}

func report(fn ProgressFunc, done, total int) {
	if fn != nil {
		fn(done, total)
	}
}
