// internal/pkg/invoice/service.go
package invoice

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Service handles invoice PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new invoice service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// Generate renders a PDF invoice for an order
func (s *Service) Generate(o *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", o.OrderNumber),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		StoreName:     s.config.App.Name,
		Order:         o,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from the invoice template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string       `json:"invoice_number"`
	InvoiceDate   string       `json:"invoice_date"`
	StoreName     string       `json:"store_name"`
	Order         *order.Order `json:"order"`
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 24px; color: #222; }
        .header { display: flex; justify-content: space-between; margin-bottom: 32px; }
        .store { font-size: 22px; font-weight: bold; }
        .meta { text-align: right; font-size: 13px; color: #555; }
        h2 { font-size: 16px; border-bottom: 1px solid #ddd; padding-bottom: 6px; }
        table { width: 100%; border-collapse: collapse; margin-top: 12px; }
        th { text-align: left; font-size: 12px; text-transform: uppercase; color: #777;
             border-bottom: 2px solid #ddd; padding: 8px 4px; }
        td { padding: 8px 4px; border-bottom: 1px solid #eee; font-size: 13px; }
        .num { text-align: right; }
        .total-row td { font-weight: bold; border-top: 2px solid #222; border-bottom: none; }
        .address { font-size: 13px; white-space: pre-line; }
    </style>
</head>
<body>
    <div class="header">
        <div class="store">{{.StoreName}}</div>
        <div class="meta">
            Invoice {{.InvoiceNumber}}<br>
            Order {{.Order.OrderNumber}}<br>
            {{.InvoiceDate}}
        </div>
    </div>

    <h2>Ship To</h2>
    <div class="address">{{.Order.ShippingAddress}}</div>

    <h2>Items</h2>
    <table>
        <tr>
            <th>Product</th>
            <th>Variant</th>
            <th class="num">Qty</th>
            <th class="num">Unit Price</th>
            <th class="num">Amount</th>
        </tr>
        {{range .Order.Items}}
        <tr>
            <td>{{.Product.Name}}</td>
            <td>{{if .Variant}}{{.Variant.Name}}: {{.Variant.Value}}{{end}}</td>
            <td class="num">{{.Quantity}}</td>
            <td class="num">{{printf "%.2f" .GetFormattedPrice}}</td>
            <td class="num">{{printf "%.2f" .GetFormattedLineTotal}}</td>
        </tr>
        {{end}}
        <tr class="total-row">
            <td colspan="4">Total</td>
            <td class="num">{{printf "%.2f" .Order.GetFormattedTotal}}</td>
        </tr>
    </table>
</body>
</html>
`
