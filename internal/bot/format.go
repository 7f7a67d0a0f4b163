package bot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

// parseExpenseArgs splits "<amount> <note...> [category]" argument
// lists. The trailing words only count as a category when they match a
// member of the category set exactly; otherwise they stay in the note.
func parseExpenseArgs(args []string) (amount float64, note, category string, err error) {
	amount, err = strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, "", "", fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	// Category labels span one to four words ("📦 Other", "🍔 Food &
	// Dining"), so try every suffix, longest first, keeping at least one
	// word of note.
	rest := args[1:]
	for j := 1; j < len(rest); j++ {
		if cand := strings.Join(rest[j:], " "); model.IsCategory(cand) {
			return amount, strings.Join(rest[:j], " "), cand, nil
		}
	}
	return amount, strings.Join(rest, " "), "", nil
}

// validRange accepts the relative keywords and anything shaped like an
// absolute date or month; malformed absolute values pass here and yield
// an empty result downstream.
func validRange(rng string) bool {
	switch rng {
	case "today", "week", "month":
		return true
	}
	n := strings.Count(rng, "/")
	return n == 1 || n == 2
}

// formatAmount renders an amount with thousand separators and no
// decimals, the way totals read in chat.
func formatAmount(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 0, 64)
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if v < 0 {
		return "-" + sb.String()
	}
	return sb.String()
}

func expenseLine(e model.Expense) string {
	return fmt.Sprintf("ID: %d - %s - %s - %s", e.ID, formatAmount(e.Amount), e.Note, e.Category)
}

// userName is the display label stored with a record: first name, then
// username, then a placeholder.
func userName(from *tgbotapi.User) string {
	if from.FirstName != "" {
		return from.FirstName
	}
	if from.UserName != "" {
		return from.UserName
	}
	return "Unknown"
}
