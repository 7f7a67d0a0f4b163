package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

func encodeRow(e model.Expense) []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		strconv.FormatInt(e.OwnerID, 10),
		e.OwnerName,
		strconv.FormatFloat(e.Amount, 'f', -1, 64),
		e.Note,
		e.Category,
		e.CreatedAt.Format(model.TimestampLayout),
	}
}

// decodeRow turns a table row into a record. The header row and any
// other artifact whose id column is not a positive integer is rejected.
func decodeRow(cols []string) (model.Expense, bool) {
	if len(cols) < 7 {
		return model.Expense{}, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(cols[0]), 10, 64)
	if err != nil || id <= 0 {
		return model.Expense{}, false
	}
	ownerID, err := strconv.ParseInt(strings.TrimSpace(cols[1]), 10, 64)
	if err != nil {
		return model.Expense{}, false
	}
	// Amounts may come back with a decimal comma depending on the sheet
	// locale.
	amount, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(cols[3]), ",", "."), 64)
	if err != nil {
		return model.Expense{}, false
	}
	createdAt, err := time.ParseInLocation(model.TimestampLayout, strings.TrimSpace(cols[6]), time.Local)
	if err != nil {
		return model.Expense{}, false
	}
	return model.Expense{
		ID:        id,
		OwnerID:   ownerID,
		OwnerName: cols[2],
		Amount:    amount,
		Note:      cols[4],
		Category:  cols[5],
		CreatedAt: createdAt,
	}, true
}

func decodeRows(rows [][]string) []model.Expense {
	var out []model.Expense
	for _, row := range rows {
		if e, ok := decodeRow(row); ok {
			out = append(out, e)
		}
	}
	return out
}

func filterOwner(records []model.Expense, ownerID int64) []model.Expense {
	out := make([]model.Expense, 0, len(records))
	for _, e := range records {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out
}
