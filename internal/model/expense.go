package model

import "time"

// TimestampLayout is the fixed second-precision format of the timestamp
// column, in the process-local timezone.
const TimestampLayout = "2006-01-02 15:04:05"

// Expense is one row of the ledger.
type Expense struct {
	ID        int64
	OwnerID   int64
	OwnerName string
	Amount    float64
	Note      string
	Category  string
	CreatedAt time.Time
}
