package ledger

import (
	"context"
	"time"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/parser"
	"github.com/zohuyhieuzo03/ExpenseTracker/internal/repository"
)

// ExpenseParser converts free-form text into a structured expense.
type ExpenseParser interface {
	Parse(ctx context.Context, text string) (parser.ParsedExpense, error)
}

// ExpenseTracker composes the store, the pending tracker and the free
// text parser into the operations the dispatcher calls.
type ExpenseTracker struct {
	repo    repository.Repository
	parser  ExpenseParser
	pending *PendingTracker
	now     func() time.Time
}

func NewExpenseTracker(repo repository.Repository, p ExpenseParser) *ExpenseTracker {
	return &ExpenseTracker{
		repo:    repo,
		parser:  p,
		pending: NewPendingTracker(),
		now:     time.Now,
	}
}

// AddResult reports how an add completed: a stored record id, or a draft
// now waiting on a category choice.
type AddResult struct {
	ID      int64
	Pending bool
}

// Add appends an expense for the owner. Without a category the expense
// is staged as a draft instead, replacing any draft the owner already
// has, and nothing is written until a category selection arrives.
func (s *ExpenseTracker) Add(ctx context.Context, ownerID int64, ownerName string, amount float64, note, category string) (AddResult, error) {
	if category == "" {
		s.pending.Stage(ownerID, model.Draft{Kind: model.DraftNew, Amount: amount, Note: note})
		return AddResult{Pending: true}, nil
	}
	// Labels outside the enumeration collapse to the default.
	if !model.IsCategory(category) {
		category = model.DefaultCategory
	}
	id, err := s.repo.Append(ctx, ownerID, ownerName, amount, note, category)
	if err != nil {
		return AddResult{}, storageErr("append expense", err)
	}
	return AddResult{ID: id}, nil
}

// AddSmart parses free text into an expense and routes it through Add.
// A parse result without a usable category follows the pending-category
// flow like any other add.
func (s *ExpenseTracker) AddSmart(ctx context.Context, ownerID int64, ownerName, text string) (parser.ParsedExpense, AddResult, error) {
	parsed, err := s.parser.Parse(ctx, text)
	if err != nil {
		return parser.ParsedExpense{}, AddResult{}, err
	}
	res, err := s.Add(ctx, ownerID, ownerName, parsed.Amount, parsed.Note, parsed.Category)
	return parsed, res, err
}

// Edit changes amount, note and category of the owner's record in
// place; id, owner and creation time never change. Without a category
// the change is staged as a draft. Editing someone else's record fails
// with ErrNotOwner before anything is written.
func (s *ExpenseTracker) Edit(ctx context.Context, ownerID, id int64, amount float64, note, category string) (pending bool, err error) {
	rec, err := s.findByID(ctx, id)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, ErrNotFound
	}
	if rec.OwnerID != ownerID {
		return false, ErrNotOwner
	}

	if category == "" {
		s.pending.Stage(ownerID, model.Draft{Kind: model.DraftEdit, TargetID: id, Amount: amount, Note: note})
		return true, nil
	}
	if !model.IsCategory(category) {
		category = model.DefaultCategory
	}
	ok, err := s.repo.Update(ctx, id, repository.FieldChanges{Amount: &amount, Note: &note, Category: &category})
	if err != nil {
		return false, storageErr("update expense", err)
	}
	if !ok {
		return false, ErrNotFound
	}
	return false, nil
}

// Selection describes the record finalized by a category choice.
type Selection struct {
	Edit     bool
	ID       int64
	Amount   float64
	Note     string
	Category string
	// Stored is false when an edit draft's target vanished between
	// staging and selection.
	Stored bool
}

// SelectCategory resolves the user's open draft with the chosen
// category. The draft is consumed whatever the store outcome. With no
// draft open the call fails with ErrNothingPending.
func (s *ExpenseTracker) SelectCategory(ctx context.Context, ownerID int64, ownerName, category string) (Selection, error) {
	d, ok := s.pending.Take(ownerID)
	if !ok {
		return Selection{}, ErrNothingPending
	}
	if !model.IsCategory(category) {
		category = model.DefaultCategory
	}

	sel := Selection{Amount: d.Amount, Note: d.Note, Category: category}
	if d.Kind == model.DraftEdit {
		sel.Edit = true
		sel.ID = d.TargetID
		stored, err := s.repo.Update(ctx, d.TargetID, repository.FieldChanges{Amount: &d.Amount, Note: &d.Note, Category: &category})
		if err != nil {
			return sel, storageErr("update expense", err)
		}
		sel.Stored = stored
		return sel, nil
	}

	id, err := s.repo.Append(ctx, ownerID, ownerName, d.Amount, d.Note, category)
	if err != nil {
		return sel, storageErr("append expense", err)
	}
	sel.ID = id
	sel.Stored = true
	return sel, nil
}

// Expenses returns the owner's records, optionally narrowed to a range
// (see FilterByRange). An empty range means all records.
func (s *ExpenseTracker) Expenses(ctx context.Context, ownerID int64, rng string) ([]model.Expense, error) {
	records, err := s.repo.ReadByOwner(ctx, ownerID)
	if err != nil {
		return nil, storageErr("read expenses", err)
	}
	if rng == "" {
		return records, nil
	}
	return FilterByRange(records, rng, s.now()), nil
}

// Total reduces the same selection as Expenses to a sum of amounts.
func (s *ExpenseTracker) Total(ctx context.Context, ownerID int64, rng string) (float64, error) {
	records, err := s.Expenses(ctx, ownerID, rng)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range records {
		total += e.Amount
	}
	return total, nil
}

func (s *ExpenseTracker) findByID(ctx context.Context, id int64) (*model.Expense, error) {
	records, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, storageErr("read expenses", err)
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, nil
}
