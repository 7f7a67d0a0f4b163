package repository

import (
	"context"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

// Header is the first row of the ledger table, written once when the
// table is empty.
var Header = []string{"id", "user_id", "username", "amount", "note", "category", "timestamp"}

// FieldChanges names the mutable columns of a ledger row. Nil fields are
// left untouched by Update.
type FieldChanges struct {
	Amount   *float64
	Note     *string
	Category *string
}

// Repository is the row-oriented ledger store. Reads are full scans,
// there is no index and no delete.
type Repository interface {
	// EnsureHeader writes the header row if the table is empty.
	EnsureHeader(ctx context.Context) error
	// Append assigns the next id and the creation timestamp, writes the
	// row, and returns the assigned id.
	Append(ctx context.Context, ownerID int64, ownerName string, amount float64, note, category string) (int64, error)
	// ReadAll returns every record in row order.
	ReadAll(ctx context.Context) ([]model.Expense, error)
	// ReadByOwner returns the owner's records in row order.
	ReadByOwner(ctx context.Context, ownerID int64) ([]model.Expense, error)
	// Update overwrites only the supplied columns of the row holding id.
	// A missing id reports false, not an error.
	Update(ctx context.Context, id int64, changes FieldChanges) (bool, error)
}

// NextID derives the next record id from current store content: one past
// the highest id present, or 1 for an empty ledger. It keeps no counter
// of its own, so allocation is only safe when performed together with
// the append as one step.
func NextID(records []model.Expense) int64 {
	var max int64
	for _, r := range records {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}
