package billing

import (
	"bytes"
	"fmt"
	"log"
	"text/template"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// Notifier delivers a short message to a client phone number. Delivery is
// best effort and happens only after the surrounding transaction has
// committed; a failure is surfaced as a warning, never as an error.
type Notifier interface {
	Send(phone, message string) error
}

// ObjectCleaner removes stored site images during cascading deletes.
// Failures are logged and reported as warnings.
type ObjectCleaner interface {
	Delete(publicID string) error
}

var quotationSummaryTmpl = template.Must(template.New("quotationSummary").
	Funcs(template.FuncMap{
		"deref": func(f *float64) float64 {
			if f == nil {
				return 0
			}
			return *f
		},
	}).
	Parse(`Soni Painting - Quotation {{.Number}} for {{.ClientName}}
{{- range .LineItems}}
- {{.Description}}: Rs {{printf "%.2f" .Rate}}{{if .Area}} x {{printf "%.2f" (deref .Area)}} sqft{{end}}
{{- end}}
Subtotal: Rs {{printf "%.2f" .Subtotal}}
Discount: Rs {{printf "%.2f" .Discount}}
Grand Total: Rs {{printf "%.2f" .GrandTotal}}`))

// quotationSummary renders the human-readable quotation message sent on
// creation and on edits.
func quotationSummary(q *models.Quotation) string {
	var buf bytes.Buffer
	if err := quotationSummaryTmpl.Execute(&buf, q); err != nil {
		log.Printf("⚠️  quotation summary render failed: %v", err)
		return fmt.Sprintf("Soni Painting - Quotation %s, grand total Rs %.2f", q.Number, q.GrandTotal)
	}
	return buf.String()
}

// statusMessage is the short accept/reject notice.
func statusMessage(q *models.Quotation) string {
	switch q.Status {
	case models.QuotationAccepted:
		return fmt.Sprintf("Soni Painting - Quotation %s has been accepted. Thank you! We will be in touch shortly.", q.Number)
	case models.QuotationRejected:
		return fmt.Sprintf("Soni Painting - Quotation %s has been marked rejected.", q.Number)
	default:
		return fmt.Sprintf("Soni Painting - Quotation %s is pending review.", q.Number)
	}
}

// notify sends msg through the notifier, translating any failure into a
// warning string. Runs strictly after commit; a lost notification never
// rolls anything back.
func notify(n Notifier, phone, msg string) string {
	if n == nil {
		return ""
	}
	if err := n.Send(phone, msg); err != nil {
		log.Printf("⚠️  notification to %s failed: %v", phone, err)
		return "notification could not be delivered"
	}
	return ""
}
