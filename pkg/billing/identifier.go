package billing

import "fmt"

// DocumentKind selects the prefix of a human-readable document number.
type DocumentKind string

const (
	KindQuotation DocumentKind = "quotation"
	KindProject   DocumentKind = "project"
	KindInvoice   DocumentKind = "invoice"
)

var numberPrefixes = map[DocumentKind]string{
	KindQuotation: "QUO",
	KindProject:   "PRJ",
	KindInvoice:   "INV",
}

// FormatNumber builds the canonical document number, e.g. QUO-2024-0007.
// Pure formatting: same inputs always yield the same string, and distinct
// (kind, year, seq) triples never collide. A non-positive sequence or an
// unknown kind is a programming error, not a runtime condition.
func FormatNumber(kind DocumentKind, year int, seq int64) string {
	prefix, ok := numberPrefixes[kind]
	if !ok {
		panic(fmt.Sprintf("billing: unknown document kind %q", kind))
	}
	if seq <= 0 {
		panic(fmt.Sprintf("billing: non-positive sequence %d for %s", seq, kind))
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}
