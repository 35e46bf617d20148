package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "QUO-2024-0007", FormatNumber(KindQuotation, 2024, 7))
	assert.Equal(t, "PRJ-2025-0001", FormatNumber(KindProject, 2025, 1))
	assert.Equal(t, "INV-2024-1234", FormatNumber(KindInvoice, 2024, 1234))
	// width grows past four digits instead of wrapping
	assert.Equal(t, "INV-2024-12345", FormatNumber(KindInvoice, 2024, 12345))
}

func TestFormatNumberDeterministic(t *testing.T) {
	a := FormatNumber(KindQuotation, 2024, 42)
	b := FormatNumber(KindQuotation, 2024, 42)
	assert.Equal(t, a, b)
}

func TestFormatNumberDistinctInputsNeverCollide(t *testing.T) {
	seen := make(map[string]bool)
	for _, kind := range []DocumentKind{KindQuotation, KindProject, KindInvoice} {
		for year := 2023; year <= 2025; year++ {
			for seq := int64(1); seq <= 50; seq++ {
				n := FormatNumber(kind, year, seq)
				assert.False(t, seen[n], "collision on %s", n)
				seen[n] = true
			}
		}
	}
}

func TestFormatNumberPanicsOnBadInput(t *testing.T) {
	assert.Panics(t, func() { FormatNumber(DocumentKind("receipt"), 2024, 1) })
	assert.Panics(t, func() { FormatNumber(KindQuotation, 2024, 0) })
	assert.Panics(t, func() { FormatNumber(KindQuotation, 2024, -3) })
}
