package core

import "time"

// Record is the flat shape of a transaction on the wire and in storage.
type Record struct {
	ID          string          `json:"id"`
	PropertyID  string          `json:"property_id"`
	Type        TransactionType `json:"type"`
	Category    Category        `json:"category,omitempty"`
	Amount      Money           `json:"amount"`
	Description string          `json:"description"`
	Date        MonthKey        `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecordOf flattens a transaction.
func RecordOf(tx Transaction) Record {
	e := tx.Common()
	return Record{
		ID:          e.ID,
		PropertyID:  e.PropertyID,
		Type:        tx.Type(),
		Category:    CategoryOf(tx),
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Month,
		CreatedAt:   e.CreatedAt,
	}
}

// RecordsOf flattens a slice of transactions. The result is never nil.
func RecordsOf(txs []Transaction) []Record {
	out := make([]Record, 0, len(txs))
	for _, tx := range txs {
		out = append(out, RecordOf(tx))
	}
	return out
}

// Transaction validates r and returns the matching variant.
func (r Record) Transaction() (Transaction, error) {
	return NewTransaction(r.Type, Entry{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		Amount:      r.Amount,
		Description: r.Description,
		Month:       r.Date,
		CreatedAt:   r.CreatedAt,
	}, r.Category)
}
