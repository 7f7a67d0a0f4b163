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

func main() {
	log := logger.New()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()

	repo, err := repository.NewSheetsRepository(ctx, cfg.GoogleSheetID, cfg.GoogleCredentials, cfg.SerializeWrites)
	if err != nil {
		log.Fatal().Err(err).Msg("create sheets repository")
	}
	if err := repo.EnsureHeader(ctx); err != nil {
		log.Fatal().Err(err).Msg("initialize sheet")
	}

	gemini, err := parser.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("create gemini client")
	}

	service := ledger.NewExpenseTracker(repo, parser.New(gemini))

	b, err := bot.NewBot(cfg.TelegramToken, service, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create bot")
	}

	log.Info().Msg("bot running")
	if err := b.Start(); err != nil {
		log.Fatal().Err(err).Msg("bot stopped")
	}
}
