package ledger

import (
	"strings"
	"time"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

const (
	dateLayout  = "02/01/2006" // DD/MM/YYYY
	monthLayout = "01/2006"    // MM/YYYY
)

// FilterByRange selects the records whose creation date falls in the
// query window. Ranges are "today", "week", "month", an absolute day
// "DD/MM/YYYY" or an absolute month "MM/YYYY". A malformed absolute
// range is not an error: it selects nothing, indistinguishable from a
// window that holds no records.
func FilterByRange(records []model.Expense, rng string, now time.Time) []model.Expense {
	out := make([]model.Expense, 0, len(records))
	switch rng {
	case "today":
		for _, e := range records {
			if sameDay(e.CreatedAt, now) {
				out = append(out, e)
			}
		}
	case "week":
		start := weekStart(now)
		for _, e := range records {
			if !dateOf(e.CreatedAt).Before(start) {
				out = append(out, e)
			}
		}
	case "month":
		for _, e := range records {
			if sameMonth(e.CreatedAt, now) {
				out = append(out, e)
			}
		}
	default:
		switch strings.Count(rng, "/") {
		case 2:
			target, err := time.ParseInLocation(dateLayout, rng, now.Location())
			if err != nil {
				return out
			}
			for _, e := range records {
				if sameDay(e.CreatedAt, target) {
					out = append(out, e)
				}
			}
		case 1:
			target, err := time.ParseInLocation(monthLayout, rng, now.Location())
			if err != nil {
				return out
			}
			for _, e := range records {
				if sameMonth(e.CreatedAt, target) {
					out = append(out, e)
				}
			}
		}
	}
	return out
}

// weekStart is the Monday of now's week, at midnight.
func weekStart(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	return dateOf(now).AddDate(0, 0, -offset)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
