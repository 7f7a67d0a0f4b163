package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

// SheetsRepository stores the ledger in one Google Sheets tab, one
// record per row below the header. Every read re-fetches the whole
// table; update locates its row by rescanning and overwrites changed
// cells in place.
type SheetsRepository struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string

	// Guards the scan-then-write sequences in Append and Update when
	// serialized writes are enabled. Writers in other processes are not
	// covered.
	mu        sync.Mutex
	serialize bool

	now func() time.Time
}

var _ Repository = (*SheetsRepository)(nil)

// NewSheetsRepository builds a store over the first tab of the given
// spreadsheet, authenticated with a service account key.
func NewSheetsRepository(ctx context.Context, spreadsheetID, credentialsJSON string, serializeWrites bool) (*SheetsRepository, error) {
	svc, err := gsheet.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsRepository{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     "Sheet1",
		serialize:     serializeWrites,
		now:           time.Now,
	}, nil
}

func (r *SheetsRepository) dataRange() string {
	return fmt.Sprintf("%s!A:G", r.sheetName)
}

func (r *SheetsRepository) readRows(ctx context.Context) ([][]string, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.dataRange()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.dataRange(), err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rows = append(rows, toStrings(row))
	}
	return rows, nil
}

func (r *SheetsRepository) appendRow(ctx context.Context, row []string) error {
	vr := &gsheet.ValueRange{Values: [][]any{toAnyRow(row)}}
	_, err := r.svc.Spreadsheets.Values.Append(r.spreadsheetID, r.dataRange(), vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", r.dataRange(), err)
	}
	return nil
}

// EnsureHeader writes the column names once when the table is empty.
func (r *SheetsRepository) EnsureHeader(ctx context.Context) error {
	rows, err := r.readRows(ctx)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return nil
	}
	return r.appendRow(ctx, Header)
}

func (r *SheetsRepository) ReadAll(ctx context.Context) ([]model.Expense, error) {
	rows, err := r.readRows(ctx)
	if err != nil {
		return nil, err
	}
	return decodeRows(rows), nil
}

func (r *SheetsRepository) ReadByOwner(ctx context.Context, ownerID int64) ([]model.Expense, error) {
	records, err := r.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterOwner(records, ownerID), nil
}

func (r *SheetsRepository) Append(ctx context.Context, ownerID int64, ownerName string, amount float64, note, category string) (int64, error) {
	if r.serialize {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	records, err := r.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	id := NextID(records)

	row := encodeRow(model.Expense{
		ID:        id,
		OwnerID:   ownerID,
		OwnerName: ownerName,
		Amount:    amount,
		Note:      note,
		Category:  category,
		CreatedAt: r.now(),
	})
	if err := r.appendRow(ctx, row); err != nil {
		return 0, err
	}
	return id, nil
}

// Update rescans the table to find the row holding id, then overwrites
// only the supplied cells by position. Columns D, E, F are amount, note
// and category.
func (r *SheetsRepository) Update(ctx context.Context, id int64, changes FieldChanges) (bool, error) {
	if r.serialize {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	rows, err := r.readRows(ctx)
	if err != nil {
		return false, err
	}
	rowNum := 0 // 1-based sheet row
	for i, row := range rows {
		if e, ok := decodeRow(row); ok && e.ID == id {
			rowNum = i + 1
			break
		}
	}
	if rowNum == 0 {
		return false, nil
	}

	if changes.Amount != nil {
		if err := r.writeCell(ctx, "D", rowNum, strconv.FormatFloat(*changes.Amount, 'f', -1, 64)); err != nil {
			return false, err
		}
	}
	if changes.Note != nil {
		if err := r.writeCell(ctx, "E", rowNum, *changes.Note); err != nil {
			return false, err
		}
	}
	if changes.Category != nil {
		if err := r.writeCell(ctx, "F", rowNum, *changes.Category); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (r *SheetsRepository) writeCell(ctx context.Context, col string, row int, value string) error {
	rng := fmt.Sprintf("%s!%s%d", r.sheetName, col, row)
	vr := &gsheet.ValueRange{Values: [][]any{{value}}}
	_, err := r.svc.Spreadsheets.Values.Update(r.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toAnyRow(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
