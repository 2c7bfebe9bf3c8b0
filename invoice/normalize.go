package invoice

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"invoice-portal/utils"
)

// The upstream API is not contractually fixed: orders, line items and
// payments arrive under many possible key spellings, sometimes with
// nested sub-objects, sometimes with values serialized as strings.
// All alias tables live here so the canonical model is the single typed
// boundary the rest of the service may rely on.

var (
	detailContainerKeys = []string{
		"order_details", "order_items", "items", "products",
		"details", "line_items", "cart", "items_list",
	}
	productContainerKeys = []string{"Product", "product", "produk", "item"}

	customerContainerKeys = []string{"Customer", "customer", "pelanggan"}
	customerPathKeys      = []string{"Order.Customer", "order.customer"}

	nameKeys    = []string{"name", "nama", "customer_name", "nama_pelanggan", "nama_customer", "full_name"}
	phoneKeys   = []string{"phone", "telepon", "no_hp", "no_telp", "hp", "phone_number"}
	addressKeys = []string{"address", "alamat"}

	transaksiKeys = []string{"no_transaksi", "transaction_number", "transaksi", "no_invoice", "invoice_number"}
	orderTotalKey = []string{"total", "total_bayar", "jumlah", "grand_total", "total_harga"}
	customerIDKey = []string{"customer_id", "id_pelanggan", "CustomerId", "pelanggan_id", "id_customer"}
	orderIDKeys   = []string{"id", "order_id", "id_order"}

	itemNameKeys  = []string{"name", "nama_produk", "product_name", "nama", "nama_barang", "title"}
	itemDescKeys  = []string{"description", "deskripsi", "keterangan"}
	itemQtyKeys   = []string{"quantity", "jumlah", "qty", "jumlah_barang", "amount"}
	itemPriceKeys = []string{"unit_price", "harga", "price", "harga_satuan", "harga_jual", "selling_price"}

	paymentIDKeys     = []string{"id", "payment_id", "id_pembayaran"}
	paymentDateKeys   = []string{"date", "tanggal", "tanggal_bayar", "payment_date", "created_at"}
	paymentAmountKeys = []string{"amount", "jumlah", "jumlah_bayar", "nominal", "total"}
)

// Customer is always primitive strings after normalization, never nested
// objects or serialization artifacts like "{}".
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is the canonical order head. Legacy top-level aliases are kept so
// older render paths keep working against normalized output.
type Order struct {
	TransactionNumber string   `json:"no_transaksi"`
	Total             float64  `json:"total"`
	Customer          Customer `json:"customer"`

	CustomerName    string `json:"nama_pelanggan"`
	CustomerPhone   string `json:"telepon"`
	CustomerAddress string `json:"alamat"`

	Raw map[string]any `json:"-"`
}

// Detail is one canonical line item, with legacy aliases mirrored.
type Detail struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`

	NamaProduk string  `json:"nama_produk"`
	Jumlah     float64 `json:"jumlah"`
	Harga      float64 `json:"harga"`

	Raw map[string]any `json:"-"`
}

// Payment is one canonical payment record.
type Payment struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`

	Tanggal string `json:"tanggal"`

	Raw map[string]any `json:"-"`
}

// Canonical is the normalized invoice model: the only shape downstream
// components (renderer, exporter, JSON API) may assume.
type Canonical struct {
	Order    Order     `json:"order"`
	Details  []Detail  `json:"details"`
	Payments []Payment `json:"payments"`
}

// Normalize reconciles arbitrarily-shaped raw order/line-item/payment data
// into the canonical invoice model. It is pure and idempotent: feeding its
// own (re-serialized) output back in yields the same model.
func Normalize(rawOrder map[string]any, rawDetails []any, rawPayments []any) *Canonical {
	c := &Canonical{
		Details:  []Detail{},
		Payments: []Payment{},
	}

	c.Order = normalizeOrder(rawOrder, rawPayments)

	items := rawDetails
	if len(items) == 0 {
		items = embeddedDetails(rawOrder)
	}
	for _, it := range items {
		c.Details = append(c.Details, normalizeDetail(it))
	}

	for _, p := range rawPayments {
		c.Payments = append(c.Payments, normalizePayment(p))
	}

	if c.Order.Total == 0 {
		c.Order.Total = utils.Round2(sumLineTotals(c.Details))
	}

	return c
}

func normalizeOrder(raw map[string]any, rawPayments []any) Order {
	o := Order{Raw: raw}
	if raw == nil {
		o.Customer = Customer{Name: "-"}
		o.CustomerName = o.Customer.Name
		return o
	}

	o.TransactionNumber = firstString(raw, transaksiKeys)
	o.Total = firstNumber(raw, orderTotalKey, 0)

	cust := extractCustomer(raw)
	if looksEmpty(cust.Name) {
		// Known upstream artifact: customer data sometimes only survives
		// inside payment records. Scan those before giving up.
		if found, ok := customerFromPayments(rawPayments); ok {
			if looksEmpty(cust.Name) {
				cust.Name = found.Name
			}
			if looksEmpty(cust.Phone) {
				cust.Phone = found.Phone
			}
			if looksEmpty(cust.Address) {
				cust.Address = found.Address
			}
		}
	}
	if looksEmpty(cust.Name) {
		cust.Name = "-"
	}
	if looksEmpty(cust.Phone) {
		cust.Phone = ""
	}
	if looksEmpty(cust.Address) {
		cust.Address = ""
	}
	o.Customer = cust
	o.CustomerName = cust.Name
	o.CustomerPhone = cust.Phone
	o.CustomerAddress = cust.Address
	return o
}

// extractCustomer reads a customer from a nested sub-object first, then
// from top-level aliases on the order itself.
func extractCustomer(raw map[string]any) Customer {
	var c Customer
	if sub, ok := firstMap(raw, customerContainerKeys); ok {
		c.Name = firstString(sub, nameKeys)
		c.Phone = firstString(sub, phoneKeys)
		c.Address = firstString(sub, addressKeys)
	}
	if looksEmpty(c.Name) {
		c.Name = firstString(raw, nameKeys)
	}
	if looksEmpty(c.Phone) {
		c.Phone = firstString(raw, phoneKeys)
	}
	if looksEmpty(c.Address) {
		c.Address = firstString(raw, addressKeys)
	}
	return c
}

// customerFromPayments chases the possible container chains on each raw
// payment and returns the first customer with a usable name.
func customerFromPayments(rawPayments []any) (Customer, bool) {
	for _, p := range rawPayments {
		m := asMap(p)
		if m == nil {
			continue
		}
		var candidates []map[string]any
		if sub, ok := firstMap(m, customerContainerKeys); ok {
			candidates = append(candidates, sub)
		}
		for _, path := range customerPathKeys {
			if sub, ok := mapAtPath(m, path); ok {
				candidates = append(candidates, sub)
			}
		}
		for _, sub := range candidates {
			c := Customer{
				Name:    firstString(sub, nameKeys),
				Phone:   firstString(sub, phoneKeys),
				Address: firstString(sub, addressKeys),
			}
			if !looksEmpty(c.Name) {
				return c, true
			}
		}
	}
	return Customer{}, false
}

func normalizeDetail(v any) Detail {
	raw := asMap(v)
	if raw == nil {
		d := Detail{Name: "-", Quantity: 1, UnitPrice: 0}
		if s := primitiveString(v); !looksEmpty(s) {
			d.Name = s
		}
		d.NamaProduk, d.Jumlah, d.Harga = d.Name, d.Quantity, d.UnitPrice
		return d
	}

	d := Detail{Raw: raw}

	// Name precedence: item's own name-like field, then the nested
	// product object, then the description, then "-".
	d.Name = firstString(raw, itemNameKeys)
	product, hasProduct := firstMap(raw, productContainerKeys)
	if looksEmpty(d.Name) && hasProduct {
		d.Name = firstString(product, itemNameKeys)
	}
	if looksEmpty(d.Name) {
		d.Name = firstString(raw, itemDescKeys)
	}
	if looksEmpty(d.Name) {
		d.Name = "-"
	}

	d.Quantity = firstNumber(raw, itemQtyKeys, 1)

	// Price mirrors name: the item's own fields win over the product's.
	if n, ok := lookupNumber(raw, itemPriceKeys); ok {
		d.UnitPrice = n
	} else if hasProduct {
		d.UnitPrice = firstNumber(product, itemPriceKeys, 0)
	}

	d.NamaProduk, d.Jumlah, d.Harga = d.Name, d.Quantity, d.UnitPrice
	return d
}

func normalizePayment(v any) Payment {
	raw := asMap(v)
	if raw == nil {
		return Payment{Amount: 0, Raw: nil}
	}
	p := Payment{Raw: raw}
	if pv, ok := firstValue(raw, paymentIDKeys); ok {
		p.ID = primitiveString(pv)
	}
	p.Date = firstString(raw, paymentDateKeys)
	p.Amount = firstNumber(raw, paymentAmountKeys, 0)
	p.Tanggal = p.Date
	return p
}

func embeddedDetails(raw map[string]any) []any {
	if raw == nil {
		return nil
	}
	for _, k := range detailContainerKeys {
		if s, ok := raw[k].([]any); ok {
			return s
		}
	}
	return nil
}

func sumLineTotals(details []Detail) float64 {
	var total float64
	for _, d := range details {
		total += d.Quantity * d.UnitPrice
	}
	return total
}

// ---- coercion helpers ----

// looksEmpty reports whether a string value should be treated as missing.
// "{}" is a known upstream serialization artifact for empty objects.
func looksEmpty(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || t == "{}"
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// primitiveString renders scalar values as display strings. Maps and
// slices never leak through; they coerce to "".
func primitiveString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// toNumber coerces v to a finite non-negative float64. Unparsable,
// non-finite or negative values report ok=false.
func toNumber(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimPrefix(s, "Rp")
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return n, true
}

func firstValue(m map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s := primitiveString(v); !looksEmpty(s) {
				return s
			}
		}
	}
	return ""
}

func firstMap(m map[string]any, keys []string) (map[string]any, bool) {
	for _, k := range keys {
		if sub := asMap(m[k]); sub != nil {
			return sub, true
		}
	}
	return nil, false
}

func lookupNumber(m map[string]any, keys []string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if n, ok := toNumber(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func firstNumber(m map[string]any, keys []string, def float64) float64 {
	if n, ok := lookupNumber(m, keys); ok {
		return n
	}
	return def
}

// mapAtPath follows a dot path of map keys.
func mapAtPath(m map[string]any, path string) (map[string]any, bool) {
	cur := m
	for _, part := range strings.Split(path, ".") {
		next := asMap(cur[part])
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
