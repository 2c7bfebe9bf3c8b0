package render

import (
	"bytes"
	"html/template"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="id" class="{{if .DarkMode}}dark{{end}}">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.TransactionNumber}}</title>
  <link rel="stylesheet" href="/theme.css" />
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: var(--fontPrimary), "Helvetica Neue", Arial, sans-serif;
      color: var(--text);
      background: var(--background);
    }
    .invoice {
      max-width: 820px;
      margin: 0 auto;
      background: var(--panel);
      border: 1px solid var(--border);
      border-radius: 8px;
      padding: 24px;
    }
    .toolbar {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid var(--accent);
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .chip {
      display: inline-block;
      padding: 4px 12px;
      border-radius: 999px;
      font-size: 12px;
      color: var(--buttonText);
    }
    .chip.lunas { background: var(--success); }
    .chip.dp { background: var(--warning); }
    .chip.belum_bayar { background: var(--danger); }
    .customer {
      font-size: 14px;
      color: var(--muted);
    }
    .customer .name { color: var(--text); font-weight: 600; }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
      margin-bottom: 24px;
    }
    th, td {
      padding: 10px;
      border-bottom: 1px solid var(--border);
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: var(--muted);
    }
    td.num, th.num { text-align: right; }
    .summary {
      display: flex;
      flex-direction: column;
      align-items: flex-end;
      gap: 4px;
      font-size: 14px;
      margin-bottom: 24px;
    }
    .summary .balance { font-size: 16px; font-weight: 700; }
    .summary .overpaid { color: var(--success); }
    .controls { display: flex; gap: 8px; margin-bottom: 24px; }
    .controls button {
      background: var(--accent);
      color: var(--buttonText);
      border: none;
      border-radius: 6px;
      padding: 8px 16px;
      cursor: pointer;
    }
    .controls button:hover { background: var(--accentHover); }
    .empty { color: var(--muted); font-style: italic; }
  </style>
</head>
<body>
  <div class="invoice" id="invoice-surface">
    <div class="toolbar">
      <div>
        <h2>Invoice {{.TransactionNumber}}</h2>
        <span class="chip {{.Status}}">{{.StatusLabel}}</span>
      </div>
      <div class="customer">
        <div class="name">{{.Customer.Name}}</div>
        {{if .Customer.Phone}}<div>{{.Customer.Phone}}</div>{{end}}
        {{if .Customer.Address}}<div>{{.Customer.Address}}</div>{{end}}
      </div>
    </div>
    {{if not .CaptureMode}}
    <div class="controls" data-capture-excluded>
      <button onclick="window.location.href=window.location.pathname + '/pdf'">Download PDF</button>
      <button onclick="window.location.href=window.location.pathname + '/preview'">Preview</button>
    </div>
    {{end}}
    <table>
      <thead>
        <tr><th>Produk</th><th class="num">Qty</th><th class="num">Harga</th><th class="num">Subtotal</th></tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.LineTotal}}</td></tr>
        {{else}}
        <tr><td colspan="4" class="empty">Tidak ada item</td></tr>
        {{end}}
      </tbody>
    </table>
    <div class="summary">
      <div>Total Pesanan: <strong>{{.TotalOrder}}</strong></div>
      <div>Total Pembayaran: <strong>{{.TotalPaid}}</strong></div>
      {{if .Overpaid}}
      <div class="balance overpaid">Kelebihan bayar: {{.OverpaidAmount}}</div>
      {{else}}
      <div class="balance">Sisa Tagihan: {{.RemainingBalance}}</div>
      {{end}}
    </div>
    <h3>Riwayat Pembayaran</h3>
    <table>
      <thead>
        <tr><th>ID</th><th>Tanggal</th><th class="num">Jumlah</th></tr>
      </thead>
      <tbody>
        {{range .Payments}}
        <tr><td>{{.ID}}</td><td>{{.Date}}</td><td class="num">{{.Amount}}</td></tr>
        {{else}}
        <tr><td colspan="3" class="empty">Belum ada pembayaran</td></tr>
        {{end}}
      </tbody>
    </table>
  </div>
  {{if .PrintMode}}<script>window.print();</script>{{end}}
</body>
</html>`

const errorHTMLTemplate = `<!doctype html>
<html lang="id" class="{{if .DarkMode}}dark{{end}}">
<head>
  <meta charset="utf-8" />
  <title>Invoice</title>
  <link rel="stylesheet" href="/theme.css" />
  <style>
    body {
      margin: 0;
      padding: 64px 32px;
      font-family: var(--fontPrimary), Arial, sans-serif;
      color: var(--text);
      background: var(--background);
      text-align: center;
    }
  </style>
</head>
<body>
  <h2>{{.Message}}</h2>
</body>
</html>`

var (
	invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceHTMLTemplate))
	errorTmpl   = template.Must(template.New("invoiceError").Parse(errorHTMLTemplate))
)

// HTML renders the invoice surface for a view.
func HTML(v View) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ErrorHTML renders the degraded "explanatory text" page for resolution
// failures ("Order not found for transaksi: …" and friends).
func ErrorHTML(message string, darkMode bool) (string, error) {
	var buf bytes.Buffer
	err := errorTmpl.Execute(&buf, struct {
		Message  string
		DarkMode bool
	}{message, darkMode})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
