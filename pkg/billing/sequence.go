package billing

import (
	"gorm.io/gorm"
)

// Counter names. One strictly increasing sequence per document kind.
const (
	CounterQuotation = "quotation"
	CounterProject   = "project"
	CounterInvoice   = "invoice"
)

// NextSequence atomically increments the named counter and returns the new
// value, creating the row on first use (the first call returns 1). The
// increment is a single upsert so two concurrent callers can never observe
// the same value. Sequences are strictly increasing but not gap-free: a
// rolled-back transaction still consumes its value.
func NextSequence(tx *gorm.DB, name string) (int64, error) {
	var value int64
	err := tx.Raw(`
		INSERT INTO counters (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`, name).Scan(&value).Error
	if err != nil {
		return 0, transientf("increment counter "+name, err)
	}
	return value, nil
}
