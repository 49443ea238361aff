package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/buyitem-api/internal/domain/repository"
)

// StockReportLine una fila del reporte: un item con su valor en inventario (stock × precio).
type StockReportLine struct {
	ItemID   int64
	Name     string
	Market   string
	State    string
	Stock    int64
	PriceTag decimal.Decimal
	Value    decimal.Decimal
	LowStock bool
}

// StockReport foto del inventario completo con totales.
type StockReport struct {
	GeneratedAt       time.Time
	LowStockThreshold int64
	Lines             []StockReportLine
	TotalUnits        int64
	TotalValue        decimal.Decimal
	LowStockCount     int
}

// ReportUseCase arma el reporte de stock y lo delega al generador de documentos.
type ReportUseCase struct {
	itemRepo          repository.ItemRepository
	generator         StockReportGenerator
	lowStockThreshold int64
	now               func() time.Time
}

// NewReportUseCase construye el caso de uso. Los items con stock <= lowStockThreshold se marcan como bajos.
func NewReportUseCase(itemRepo repository.ItemRepository, generator StockReportGenerator, lowStockThreshold int64) *ReportUseCase {
	return &ReportUseCase{
		itemRepo:          itemRepo,
		generator:         generator,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// BuildReport calcula el reporte sin renderizarlo.
func (uc *ReportUseCase) BuildReport(ctx context.Context) (*StockReport, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	report := &StockReport{
		GeneratedAt:       uc.now(),
		LowStockThreshold: uc.lowStockThreshold,
		Lines:             make([]StockReportLine, 0, len(items)),
		TotalValue:        decimal.Zero,
	}
	for _, it := range items {
		value := it.PriceTag.Mul(decimal.NewFromInt(it.Stock))
		low := it.Stock <= uc.lowStockThreshold
		report.Lines = append(report.Lines, StockReportLine{
			ItemID:   it.ID,
			Name:     it.Name,
			Market:   it.Market,
			State:    it.State,
			Stock:    it.Stock,
			PriceTag: it.PriceTag,
			Value:    value,
			LowStock: low,
		})
		report.TotalUnits += it.Stock
		report.TotalValue = report.TotalValue.Add(value)
		if low {
			report.LowStockCount++
		}
	}
	return report, nil
}

// StockReportPDF genera el PDF del reporte de stock.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context) ([]byte, error) {
	report, err := uc.BuildReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateStockReportPDF(ctx, report)
}
