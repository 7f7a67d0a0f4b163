package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestCategoryBreakdownRendersPNG(t *testing.T) {
	g := NewGenerator()

	png, err := g.CategoryBreakdown([]model.Expense{
		{Amount: 100, Category: "🏠 Housing"},
		{Amount: -40, Category: "🍔 Food & Dining"},
		{Amount: 60, Category: "🏠 Housing"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	g := NewGenerator()

	png, err := g.CategoryBreakdown(nil)
	require.NoError(t, err)
	assert.Nil(t, png)

	// All-zero amounts leave nothing to draw either.
	png, err = g.CategoryBreakdown([]model.Expense{{Amount: 0, Category: "📦 Other"}})
	require.NoError(t, err)
	assert.Nil(t, png)
}

func TestCategoryBreakdownDefaultsUncategorized(t *testing.T) {
	g := NewGenerator()

	png, err := g.CategoryBreakdown([]model.Expense{{Amount: 10}})
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
