package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

func TestDecodeRowSkipsArtifacts(t *testing.T) {
	cases := map[string][]string{
		"header":          Header,
		"short row":       {"1", "2", "x"},
		"non-numeric id":  {"abc", "2", "x", "10", "n", "c", "2024-05-15 09:30:00"},
		"zero id":         {"0", "2", "x", "10", "n", "c", "2024-05-15 09:30:00"},
		"bad amount":      {"1", "2", "x", "ten", "n", "c", "2024-05-15 09:30:00"},
		"bad timestamp":   {"1", "2", "x", "10", "n", "c", "yesterday"},
		"non-numeric own": {"1", "bob", "x", "10", "n", "c", "2024-05-15 09:30:00"},
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := decodeRow(row)
			assert.False(t, ok)
		})
	}
}

func TestDecodeRowAcceptsDecimalComma(t *testing.T) {
	e, ok := decodeRow([]string{"1", "2", "Alice", "10,5", "n", "c", "2024-05-15 09:30:00"})
	assert.True(t, ok)
	assert.Equal(t, 10.5, e.Amount)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, int64(1), NextID(nil))

	records := []model.Expense{
		{ID: 3, CreatedAt: time.Now()},
		{ID: 7, CreatedAt: time.Now()},
		{ID: 2, CreatedAt: time.Now()},
	}
	assert.Equal(t, int64(8), NextID(records))
}
