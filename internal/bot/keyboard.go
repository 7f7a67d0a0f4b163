package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

func (b *Bot) getMainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Expense", "add_expense"),
			tgbotapi.NewInlineKeyboardButtonData("📋 List Expenses", "list_expenses"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Total", "total"),
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", "help"),
		),
	)
}

// getCategoryKeyboard lays the category set out two buttons per row.
func (b *Bot) getCategoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i := 0; i < len(model.Categories); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(model.Categories[i], "category_"+model.Categories[i]),
		}
		if i+1 < len(model.Categories) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(model.Categories[i+1], "category_"+model.Categories[i+1]))
		}
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
