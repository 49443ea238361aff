package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/buyitem-api/internal/application/inventory"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "5,00", formatMoney("5.00"))
	assert.Equal(t, "25.000,50", formatMoney("25000.50"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "999", formatThousands("999"))
}

func TestGenerateStockReportPDF(t *testing.T) {
	report := &appinventory.StockReport{
		GeneratedAt:       time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		LowStockThreshold: 5,
		Lines: []appinventory.StockReportLine{
			{ItemID: 1, Name: "widget", Market: "retail", Stock: 9, PriceTag: decimal.RequireFromString("5.00"), Value: decimal.RequireFromString("45.00")},
			{ItemID: 2, Name: "gadget", Stock: 2, PriceTag: decimal.RequireFromString("10"), Value: decimal.RequireFromString("20"), LowStock: true},
		},
		TotalUnits:    11,
		TotalValue:    decimal.RequireFromString("65.00"),
		LowStockCount: 1,
	}

	doc, err := NewMarotoStockReportGenerator("buyitem-api").GenerateStockReportPDF(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "debe devolver un documento PDF")
}

func TestGenerateStockReportPDF_SinItems(t *testing.T) {
	doc, err := NewMarotoStockReportGenerator("buyitem-api").GenerateStockReportPDF(context.Background(), &appinventory.StockReport{
		GeneratedAt: time.Now(),
		TotalValue:  decimal.Zero,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}
