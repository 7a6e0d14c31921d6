package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/adapters/store/memstore"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	"github.com/SscSPs/card_inventory_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSnapshot(t *testing.T, rows ...[]string) domain.StoreSnapshot {
	t.Helper()
	ledger := services.NewLedgerService(memstore.New(nil, rows...),
		services.WithClock(func() time.Time { return time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC) }))
	snapshot, err := ledger.Load(context.Background())
	require.NoError(t, err)
	return snapshot
}

func TestSummaryMarkdown(t *testing.T) {
	snapshot := loadSnapshot(t,
		[]string{"Ann", "Topps", "None", "No", "No", "2021", "No", "eBay", "x", "$100.00", "2024-11-05", "No", "1", "", "", ""},
		[]string{"Bob", "Prizm", "/99", "Yes", "No", "2022", "No", "Show", "y", "$50.00", "2025-01-03", "Yes", "2", "2025-01-10", "$80.00", "$75.00"},
		[]string{"Cal", "Bowman", "None", "No", "No", "2020", "No", "Shop", "z", "$30.00", "2024-11-20", "No", "3", "2025-02-02", "$20.00", "$25.00"},
	)

	md, err := summaryMarkdown(context.Background(), snapshot, services.NewMetricsService(), domain.BucketMonth, "USD")
	require.NoError(t, err)

	assert.Contains(t, md, "_As of 2025-03-01 09:30_")
	assert.Contains(t, md, "| $180.00 | $100.00 | $20.00 |")
	assert.Contains(t, md, "**In inventory:** 1")
	assert.Contains(t, md, "**Sold:** 2")
	assert.Contains(t, md, "| Nov 2024 | $130.00 |  |")
	assert.Contains(t, md, "| Jan 2025 | $50.00 | $25.00 |")
	assert.Contains(t, md, "| Feb 2025 |  | -$5.00 |")
	assert.Less(t, bytes.Index([]byte(md), []byte("Nov 2024")), bytes.Index([]byte(md), []byte("Feb 2025")))
}

func TestSummaryMarkdown_Empty(t *testing.T) {
	md, err := summaryMarkdown(context.Background(), loadSnapshot(t), services.NewMetricsService(), domain.BucketDay, "USD")
	require.NoError(t, err)
	assert.Contains(t, md, "| $0.00 | $0.00 | $0.00 |")
	assert.Contains(t, md, "_No dated records._")
}

func TestMergeSeries(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC) }
	spend := []domain.SeriesPoint{{Key: day(1), Label: "a"}, {Key: day(3), Label: "c"}}
	profit := []domain.SeriesPoint{{Key: day(2), Label: "b"}, {Key: day(3), Label: "c"}}

	rows := mergeSeries(spend, profit)

	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].label)
	assert.Nil(t, rows[0].profit)
	assert.Equal(t, "b", rows[1].label)
	assert.Nil(t, rows[1].spend)
	assert.NotNil(t, rows[2].spend)
	assert.NotNil(t, rows[2].profit)
}

func TestPrintMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMarkdown(&buf, "# Card Inventory\n"))
	assert.Contains(t, buf.String(), "Card Inventory")
}
