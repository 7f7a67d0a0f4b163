package main

import (
	"context"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/bot"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/config"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/ledger"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/logger"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/parser"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/repository"
)

// Request is the incoming API gateway payload.
type Request struct {
	Body string `json:"body"`
}

// Response is the API gateway reply.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler processes one webhook update per invocation.
func Handler(ctx context.Context, request Request) (*Response, error) {
	log := logger.New()

	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	repo, err := repository.NewSheetsRepository(ctx, cfg.GoogleSheetID, cfg.GoogleCredentials, cfg.SerializeWrites)
	if err != nil {
		return errorResponse(err)
	}
	if err := repo.EnsureHeader(ctx); err != nil {
		return errorResponse(err)
	}

	gemini, err := parser.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return errorResponse(err)
	}

	service := ledger.NewExpenseTracker(repo, parser.New(gemini))

	b, err := bot.NewBot(cfg.TelegramToken, service, log)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Entry point for local testing only; the platform calls Handler.
}
