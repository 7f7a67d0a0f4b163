package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

// Generator renders query results as chart images.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// CategoryBreakdown renders a pie of the records grouped by category,
// weighted by absolute amount. It returns nil when there is nothing to
// draw.
func (g *Generator) CategoryBreakdown(records []model.Expense) ([]byte, error) {
	totals := make(map[string]float64)
	order := make([]string, 0)
	for _, e := range records {
		cat := e.Category
		if cat == "" {
			cat = model.DefaultCategory
		}
		if _, seen := totals[cat]; !seen {
			order = append(order, cat)
		}
		totals[cat] += math.Abs(e.Amount)
	}

	values := make([]chart.Value, 0, len(order))
	for _, cat := range order {
		if totals[cat] == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.0f)", cat, totals[cat]),
			Value: totals[cat],
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category chart: %w", err)
	}
	return buf.Bytes(), nil
}
