package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/charts"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/ledger"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/parser"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	service *ledger.ExpenseTracker
	charts  *charts.Generator
	log     zerolog.Logger
}

func NewBot(token string, service *ledger.ExpenseTracker, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		service: service,
		charts:  charts.NewGenerator(),
		log:     log,
	}, nil
}

// Start runs the bot in long-polling mode. A failed handler is logged
// and the loop keeps serving subsequent updates.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			b.log.Error().Err(err).Int("update_id", update.UpdateID).Msg("handler failed")
		}
	}

	return nil
}

// HandleWebhook is the entry point for incoming webhook updates.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}
	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	log := b.log.With().
		Str("correlation_id", uuid.NewString()).
		Int("update_id", update.UpdateID).
		Logger()
	ctx := context.Background()

	if update.CallbackQuery != nil {
		return b.handleCallback(ctx, log, update.CallbackQuery)
	}
	if update.Message.IsCommand() {
		return b.handleCommand(ctx, log, update.Message)
	}
	return nil
}

func (b *Bot) handleCommand(ctx context.Context, log zerolog.Logger, message *tgbotapi.Message) error {
	cmd := message.Command()
	log.Debug().Str("command", cmd).Int64("user_id", message.From.ID).Msg("handling command")

	switch cmd {
	case "start":
		b.handleStart(message)
	case "add", "a":
		b.handleAdd(ctx, message)
	case "addsmart", "as":
		b.handleAddSmart(ctx, log, message)
	case "list", "l":
		b.handleList(ctx, message)
	case "total", "t":
		b.handleTotal(ctx, message)
	case "edit", "e":
		b.handleEdit(ctx, message)
	case "chart":
		b.handleChart(ctx, message)
	}

	return nil
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID,
		"👋 Welcome to Expense Tracker Bot!\n\n"+
			"Use the buttons below or commands:\n"+
			"• /add <amount> <note> - Add an expense\n"+
			"• /list - View your expenses\n"+
			"• /total - View total amount")
	msg.ReplyMarkup = b.getMainKeyboard()
	b.api.Send(msg)
}

func (b *Bot) handleAdd(ctx context.Context, message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())
	if len(args) < 2 {
		b.sendErrorMessage(message.Chat.ID,
			"Invalid syntax! Use: /add <amount> <note> [category]\n"+
				"Available categories:\n"+strings.Join(model.Categories, "\n"))
		return
	}

	amount, note, category, err := parseExpenseArgs(args)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Invalid amount!")
		return
	}

	res, err := b.service.Add(ctx, message.From.ID, userName(message.From), amount, note, category)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, userSafeMessage(err))
		return
	}
	if res.Pending {
		b.askCategory(message.Chat.ID)
		return
	}
	b.api.Send(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("✅ Added (ID: %d): %s - %s - %s", res.ID, formatAmount(amount), note, category)))
}

func (b *Bot) handleAddSmart(ctx context.Context, log zerolog.Logger, message *tgbotapi.Message) {
	text := strings.TrimSpace(message.CommandArguments())
	if text == "" {
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID,
			"Please provide the expense details. Example: /addsmart 50k lunch with friends\n"+
				"Available categories:\n"+strings.Join(model.Categories, "\n")))
		return
	}

	parsed, res, err := b.service.AddSmart(ctx, message.From.ID, userName(message.From), text)
	if err != nil {
		log.Warn().Err(err).Msg("smart add failed")
		b.sendErrorMessage(message.Chat.ID, userSafeMessage(err))
		return
	}
	if res.Pending {
		b.askCategory(message.Chat.ID)
		return
	}
	b.api.Send(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("✅ Added (ID: %d): %s - %s - %s", res.ID, formatAmount(parsed.Amount), parsed.Note, parsed.Category)))
}

func (b *Bot) handleList(ctx context.Context, message *tgbotapi.Message) {
	rng := strings.ToLower(strings.TrimSpace(message.CommandArguments()))
	if rng != "" && !validRange(rng) {
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID,
			"Invalid time filter! Use:\n"+
				"• /list today\n"+
				"• /list week\n"+
				"• /list month\n"+
				"• /list DD/MM/YYYY\n"+
				"• /list MM/YYYY"))
		return
	}

	expenses, err := b.service.Expenses(ctx, message.From.ID, rng)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, userSafeMessage(err))
		return
	}
	if len(expenses) == 0 {
		if rng == "" {
			b.api.Send(tgbotapi.NewMessage(message.Chat.ID, "No expenses yet."))
		} else {
			b.api.Send(tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("No expenses for %s.", rng)))
		}
		return
	}

	var sb strings.Builder
	if rng != "" {
		sb.WriteString(fmt.Sprintf("📋 Expenses for %s:\n", rng))
	}
	for i, e := range expenses {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(expenseLine(e))
	}
	b.api.Send(tgbotapi.NewMessage(message.Chat.ID, sb.String()))
}

func (b *Bot) handleTotal(ctx context.Context, message *tgbotapi.Message) {
	rng := strings.ToLower(strings.TrimSpace(message.CommandArguments()))
	if rng != "" && !validRange(rng) {
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID,
			"Invalid time filter! Use:\n"+
				"• /total today\n"+
				"• /total week\n"+
				"• /total month\n"+
				"• /total DD/MM/YYYY\n"+
				"• /total MM/YYYY"))
		return
	}

	total, err := b.service.Total(ctx, message.From.ID, rng)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, userSafeMessage(err))
		return
	}
	label := "all time"
	if rng != "" {
		label = rng
	}
	b.api.Send(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("💵 Total expenses (%s): %s", label, formatAmount(total))))
}

func (b *Bot) handleEdit(ctx context.Context, message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())
	if len(args) < 3 {
		b.sendErrorMessage(message.Chat.ID,
			"Invalid syntax! Use: /edit <id> <amount> <note> [category]\n"+
				"Example: /edit 1 50000 lunch with friends 📦 Other\n"+
				"Available categories:\n"+strings.Join(model.Categories, "\n"))
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, fmt.Sprintf("No expense found with ID: %s", args[0]))
		return
	}
	amount, note, category, err := parseExpenseArgs(args[1:])
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Invalid amount!")
		return
	}

	pending, err := b.service.Edit(ctx, message.From.ID, id, amount, note, category)
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		b.sendErrorMessage(message.Chat.ID, fmt.Sprintf("No expense found with ID: %d", id))
		return
	case errors.Is(err, ledger.ErrNotOwner):
		b.sendErrorMessage(message.Chat.ID, "You can only edit your own expenses!")
		return
	case err != nil:
		b.sendErrorMessage(message.Chat.ID, userSafeMessage(err))
		return
	}
	if pending {
		b.askCategory(message.Chat.ID)
		return
	}
	b.api.Send(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("✅ Updated expense (ID: %d):\nAmount: %s\nNote: %s\nCategory: %s",
			id, formatAmount(amount), note, category)))
}

func (b *Bot) handleChart(ctx context.Context, message *tgbotapi.Message) {
	rng := strings.ToLower(strings.TrimSpace(message.CommandArguments()))
	if rng != "" && !validRange(rng) {
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID,
			"Invalid time filter! Use /chart [today|week|month|DD/MM/YYYY|MM/YYYY]"))
		return
	}

	expenses, err := b.service.Expenses(ctx, message.From.ID, rng)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, userSafeMessage(err))
		return
	}
	png, err := b.charts.CategoryBreakdown(expenses)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Failed to render chart")
		return
	}
	if png == nil {
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID, "Nothing to chart yet."))
		return
	}
	photo := tgbotapi.NewPhoto(message.Chat.ID, tgbotapi.FileBytes{Name: "expenses.png", Bytes: png})
	b.api.Send(photo)
}

func (b *Bot) handleCallback(ctx context.Context, log zerolog.Logger, callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID

	switch {
	case callback.Data == "add_expense":
		b.api.Send(tgbotapi.NewMessage(chatID, "Use /add <amount> <note> to add an expense"))
	case callback.Data == "list_expenses":
		b.handleList(ctx, &tgbotapi.Message{From: callback.From, Chat: callback.Message.Chat})
	case callback.Data == "total":
		b.handleTotal(ctx, &tgbotapi.Message{From: callback.From, Chat: callback.Message.Chat})
	case callback.Data == "help":
		b.api.Send(tgbotapi.NewMessage(chatID,
			"📝 Available commands:\n"+
				"• /add <amount> <note> [category] - Add an expense\n"+
				"• /addsmart <free text> - Add an expense using AI\n"+
				"• /list [today|week|month|DD/MM/YYYY|MM/YYYY] - View your expenses\n"+
				"• /total [today|week|month|DD/MM/YYYY|MM/YYYY] - View total amount\n"+
				"• /edit <id> <amount> <note> [category] - Edit an expense\n"+
				"• /chart [range] - Expenses by category"))
	case strings.HasPrefix(callback.Data, "category_"):
		category := strings.TrimPrefix(callback.Data, "category_")
		b.handleCategorySelection(ctx, log, callback, category)
	}

	// Answer the callback to clear the loading indicator.
	b.api.Request(tgbotapi.NewCallback(callback.ID, ""))
	return nil
}

func (b *Bot) handleCategorySelection(ctx context.Context, log zerolog.Logger, callback *tgbotapi.CallbackQuery, category string) {
	chatID := callback.Message.Chat.ID

	sel, err := b.service.SelectCategory(ctx, callback.From.ID, userName(callback.From), category)
	switch {
	case errors.Is(err, ledger.ErrNothingPending):
		b.sendErrorMessage(chatID, "No pending operation to add category to.")
		return
	case err != nil:
		log.Error().Err(err).Int64("user_id", callback.From.ID).Msg("category selection failed")
		b.sendErrorMessage(chatID, userSafeMessage(err))
		return
	}

	if sel.Edit {
		if !sel.Stored {
			b.sendErrorMessage(chatID, "Failed to update expense")
			return
		}
		b.api.Send(tgbotapi.NewMessage(chatID,
			fmt.Sprintf("✅ Updated expense (ID: %d):\nAmount: %s\nNote: %s\nCategory: %s",
				sel.ID, formatAmount(sel.Amount), sel.Note, sel.Category)))
		return
	}
	b.api.Send(tgbotapi.NewMessage(chatID,
		fmt.Sprintf("✅ Added (ID: %d): %s - %s - %s", sel.ID, formatAmount(sel.Amount), sel.Note, sel.Category)))
}

func (b *Bot) askCategory(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Please select a category:")
	msg.ReplyMarkup = b.getCategoryKeyboard()
	b.api.Send(msg)
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	b.api.Send(tgbotapi.NewMessage(chatID, "❌ "+text))
}

// userSafeMessage maps core errors to text fit for chat. Raw storage and
// model output stays in the logs.
func userSafeMessage(err error) string {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return pe.Message()
	}
	var se *ledger.StorageError
	if errors.As(err, &se) {
		return "The expense store is unavailable right now. Please try again."
	}
	return "Something went wrong. Please try again."
}
