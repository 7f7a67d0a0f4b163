package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/parser"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/repository"
)

type stubParser struct {
	parsed parser.ParsedExpense
	err    error
}

func (p *stubParser) Parse(ctx context.Context, text string) (parser.ParsedExpense, error) {
	if p.err != nil {
		return parser.ParsedExpense{}, p.err
	}
	return p.parsed, nil
}

func newTracker(t *testing.T) (*ExpenseTracker, *repository.MemoryRepository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.EnsureHeader(context.Background()))
	return NewExpenseTracker(repo, &stubParser{}), repo
}

func TestAddWithCategoryWritesDirectly(t *testing.T) {
	ctx := context.Background()
	s, repo := newTracker(t)

	res, err := s.Add(ctx, 1, "Alice", 50000, "lunch", "🍔 Food & Dining")
	require.NoError(t, err)
	assert.False(t, res.Pending)
	assert.Equal(t, int64(1), res.ID)

	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "🍔 Food & Dining", records[0].Category)

	// No draft was opened along the way.
	_, err = s.SelectCategory(ctx, 1, "Alice", "🏠 Housing")
	assert.ErrorIs(t, err, ErrNothingPending)
}

func TestAddWithoutCategoryGoesPending(t *testing.T) {
	ctx := context.Background()
	s, repo := newTracker(t)

	res, err := s.Add(ctx, 1, "Alice", 50000, "lunch", "")
	require.NoError(t, err)
	assert.True(t, res.Pending)

	// Nothing written yet.
	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	sel, err := s.SelectCategory(ctx, 1, "Alice", "🏠 Housing")
	require.NoError(t, err)
	assert.False(t, sel.Edit)
	assert.True(t, sel.Stored)
	assert.Equal(t, int64(1), sel.ID)
	assert.Equal(t, "🏠 Housing", sel.Category)

	records, err = repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 50000.0, records[0].Amount)
	assert.Equal(t, "lunch", records[0].Note)
	assert.Equal(t, "🏠 Housing", records[0].Category)

	_, err = s.SelectCategory(ctx, 1, "Alice", "🏠 Housing")
	assert.ErrorIs(t, err, ErrNothingPending, "selection must clear the draft")
}

func TestSecondDraftDiscardsFirst(t *testing.T) {
	ctx := context.Background()
	s, repo := newTracker(t)

	_, err := s.Add(ctx, 1, "Alice", 100, "first", "")
	require.NoError(t, err)
	_, err = s.Add(ctx, 1, "Alice", 200, "second", "")
	require.NoError(t, err)

	sel, err := s.SelectCategory(ctx, 1, "Alice", "📦 Other")
	require.NoError(t, err)
	assert.Equal(t, 200.0, sel.Amount)
	assert.Equal(t, "second", sel.Note)

	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1, "only the second draft is finalized")
}

func TestEditNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newTracker(t)

	_, err := s.Edit(ctx, 1, 42, 10, "x", "📦 Other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditByNonOwnerChangesNothing(t *testing.T) {
	ctx := context.Background()
	s, repo := newTracker(t)

	_, err := s.Add(ctx, 2, "Victor", 100, "victor's", "📦 Other")
	require.NoError(t, err)
	before, err := repo.ReadAll(ctx)
	require.NoError(t, err)

	_, err = s.Edit(ctx, 1, 1, 999, "stolen", "💰 Income")
	assert.ErrorIs(t, err, ErrNotOwner)

	after, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEditKeepsIdentityFields(t *testing.T) {
	ctx := context.Background()
	s, repo := newTracker(t)

	_, err := s.Add(ctx, 1, "Alice", 100, "old", "📦 Other")
	require.NoError(t, err)
	before, err := repo.ReadAll(ctx)
	require.NoError(t, err)

	pending, err := s.Edit(ctx, 1, 1, 250, "new", "🎁 Gifts")
	require.NoError(t, err)
	assert.False(t, pending)

	after, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[0].OwnerID, after[0].OwnerID)
	assert.Equal(t, before[0].OwnerName, after[0].OwnerName)
	assert.True(t, before[0].CreatedAt.Equal(after[0].CreatedAt))
	assert.Equal(t, 250.0, after[0].Amount)
	assert.Equal(t, "new", after[0].Note)
	assert.Equal(t, "🎁 Gifts", after[0].Category)
}

func TestEditWithoutCategoryGoesPending(t *testing.T) {
	ctx := context.Background()
	s, repo := newTracker(t)

	_, err := s.Add(ctx, 1, "Alice", 100, "old", "📦 Other")
	require.NoError(t, err)

	pending, err := s.Edit(ctx, 1, 1, 250, "new", "")
	require.NoError(t, err)
	assert.True(t, pending)

	sel, err := s.SelectCategory(ctx, 1, "Alice", "🏠 Housing")
	require.NoError(t, err)
	assert.True(t, sel.Edit)
	assert.True(t, sel.Stored)
	assert.Equal(t, int64(1), sel.ID)

	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 250.0, records[0].Amount)
	assert.Equal(t, "new", records[0].Note)
	assert.Equal(t, "🏠 Housing", records[0].Category)
}

func TestQueryEmptyWeekIsNotAnError(t *testing.T) {
	ctx := context.Background()
	s, _ := newTracker(t)

	records, err := s.Expenses(ctx, 1, "week")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTotalSumsSelection(t *testing.T) {
	ctx := context.Background()
	s, repo := newTracker(t)
	s.now = func() time.Time { return time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local) }

	repo.Seed(model.Expense{ID: 1, OwnerID: 1, OwnerName: "Alice", Amount: 100, Note: "in range",
		Category: "📦 Other", CreatedAt: time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)})
	repo.Seed(model.Expense{ID: 2, OwnerID: 1, OwnerName: "Alice", Amount: 40, Note: "out of range",
		Category: "📦 Other", CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)})
	repo.Seed(model.Expense{ID: 3, OwnerID: 2, OwnerName: "Bob", Amount: 7, Note: "other owner",
		Category: "📦 Other", CreatedAt: time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)})

	all, err := s.Total(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 140.0, all)

	today, err := s.Total(ctx, 1, "today")
	require.NoError(t, err)
	assert.Equal(t, 100.0, today)
}

func TestAddSmartUsesParsedTriple(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.EnsureHeader(ctx))
	s := NewExpenseTracker(repo, &stubParser{parsed: parser.ParsedExpense{
		Amount: 50000, Note: "lunch with friends", Category: "🍔 Food & Dining",
	}})

	parsed, res, err := s.AddSmart(ctx, 1, "Alice", "50k lunch with friends")
	require.NoError(t, err)
	assert.False(t, res.Pending)
	assert.Equal(t, 50000.0, parsed.Amount)

	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "🍔 Food & Dining", records[0].Category)
}

func TestAddSmartWithoutCategoryGoesPending(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.EnsureHeader(ctx))
	s := NewExpenseTracker(repo, &stubParser{parsed: parser.ParsedExpense{Amount: 100, Note: "misc"}})

	_, res, err := s.AddSmart(ctx, 1, "Alice", "100 misc")
	require.NoError(t, err)
	assert.True(t, res.Pending)
}

func TestAddSmartSurfacesParseError(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.EnsureHeader(ctx))
	perr := &parser.ParseError{Reason: "malformed JSON in response"}
	s := NewExpenseTracker(repo, &stubParser{err: perr})

	_, _, err := s.AddSmart(ctx, 1, "Alice", "gibberish")
	var got *parser.ParseError
	assert.True(t, errors.As(err, &got))
}
