package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"

	"sales_bot/internal/sales"
)

// RenderDailyChart plots per-day turnover (Σ amount × quantity, grouped
// by UTC calendar date) as a PNG line chart. Only dates present in the
// data appear; gaps are not filled. Returns ErrNoData on an empty set.
func RenderDailyChart(records []*sales.Record, title string) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	byDay := make(map[time.Time]decimal.Decimal)
	for _, r := range records {
		day := r.CreatedAt.UTC().Truncate(24 * time.Hour)
		qty := decimal.NewFromInt(int64(r.Quantity))
		byDay[day] = byDay[day].Add(r.Amount.Mul(qty))
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	xs := make([]time.Time, 0, len(days))
	ys := make([]float64, 0, len(days))
	for _, day := range days {
		xs = append(xs, day)
		ys = append(ys, byDay[day].InexactFloat64())
	}
	if len(xs) == 1 {
		// The renderer needs a non-zero x range; repeat the lone point
		// an hour later so a single-day ledger still plots.
		xs = append(xs, xs[0].Add(time.Hour))
		ys = append(ys, ys[0])
	}

	graph := chart.Chart{
		Title: title,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    title,
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
