package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sales_bot/internal/sales"
)

func sampleRecords() []*sales.Record {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return []*sales.Record{
		{
			ID: 1, UserID: 7, Item: "Товар", Category: sales.CategoryProduct,
			Amount: decimal.RequireFromString("49.99"), Quantity: 1, CreatedAt: base,
		},
		{
			ID: 2, UserID: 7, Item: "Услуга", Category: sales.CategoryService,
			Amount: decimal.RequireFromString("120"), Quantity: 2, CreatedAt: base.Add(time.Hour),
		},
		{
			ID: 3, UserID: 9, Item: "Заметка", Category: sales.CategoryNote,
			Amount: decimal.Zero, Quantity: 1, CreatedAt: base.Add(26 * time.Hour),
		},
	}
}

func TestToCSV_RoundTrip(t *testing.T) {
	records := sampleRecords()

	data, err := ToCSV(records)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)

	assert.Equal(t,
		[]string{"id", "user_id", "item", "category", "amount", "quantity", "timestamp"},
		rows[0])

	for i, r := range records {
		row := rows[i+1]
		assert.Equal(t, r.Item, row[2])
		assert.Equal(t, string(r.Category), row[3])
		assert.Equal(t, r.Amount.String(), row[4])

		parsed, err := decimal.NewFromString(row[4])
		require.NoError(t, err)
		assert.True(t, parsed.Equal(r.Amount))

		ts, err := time.Parse(time.RFC3339, row[6])
		require.NoError(t, err)
		assert.True(t, ts.Equal(r.CreatedAt))
	}
}

func TestToCSV_Empty(t *testing.T) {
	data, err := ToCSV(nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "only the header survives an empty ledger")
}

func TestToSpreadsheet(t *testing.T) {
	records := sampleRecords()

	data, err := ToSpreadsheet(records)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)

	assert.Equal(t, "item", rows[0][2])
	assert.Equal(t, "Товар", rows[1][2])
	assert.Equal(t, "product", rows[1][3])
	assert.Equal(t, "49.99", rows[1][4])
	assert.Equal(t, "Заметка", rows[3][2])
}

func TestRenderDailyChart(t *testing.T) {
	data, err := RenderDailyChart(sampleRecords(), "Продажи по дням")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// PNG magic number.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestRenderDailyChart_SingleDay(t *testing.T) {
	records := sampleRecords()[:1]
	data, err := RenderDailyChart(records, "Продажи по дням")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderDailyChart_Empty(t *testing.T) {
	_, err := RenderDailyChart(nil, "Продажи по дням")
	assert.ErrorIs(t, err, ErrNoData)
}
