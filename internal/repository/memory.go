package repository

import (
	"context"
	"sync"
	"time"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

// MemoryRepository keeps the ledger in process memory with the same
// header-and-rows shape as the sheet. It backs tests and local runs.
type MemoryRepository struct {
	mu   sync.Mutex
	rows [][]string
	now  func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (m *MemoryRepository) EnsureHeader(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		m.rows = append(m.rows, append([]string(nil), Header...))
	}
	return nil
}

func (m *MemoryRepository) ReadAll(ctx context.Context) ([]model.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeRows(m.rows), nil
}

func (m *MemoryRepository) ReadByOwner(ctx context.Context, ownerID int64) ([]model.Expense, error) {
	records, err := m.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterOwner(records, ownerID), nil
}

func (m *MemoryRepository) Append(ctx context.Context, ownerID int64, ownerName string, amount float64, note, category string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := NextID(decodeRows(m.rows))
	m.rows = append(m.rows, encodeRow(model.Expense{
		ID:        id,
		OwnerID:   ownerID,
		OwnerName: ownerName,
		Amount:    amount,
		Note:      note,
		Category:  category,
		CreatedAt: m.now(),
	}))
	return id, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id int64, changes FieldChanges) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, row := range m.rows {
		e, ok := decodeRow(row)
		if !ok || e.ID != id {
			continue
		}
		if changes.Amount != nil {
			e.Amount = *changes.Amount
		}
		if changes.Note != nil {
			e.Note = *changes.Note
		}
		if changes.Category != nil {
			e.Category = *changes.Category
		}
		m.rows[i] = encodeRow(e)
		return true, nil
	}
	return false, nil
}

// Seed inserts a fully formed record, bypassing allocation. Tests use it
// to place records at chosen ids and timestamps.
func (m *MemoryRepository) Seed(e model.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, encodeRow(e))
}
