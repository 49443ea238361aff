package inventory

import (
	"context"
	"time"
)

// StockReportGenerator renderiza el reporte de stock a un documento (PDF en producción).
type StockReportGenerator interface {
	GenerateStockReportPDF(ctx context.Context, report *StockReport) ([]byte, error)
}

// StockObserver recibe el resultado de cada operación de stock (métricas).
type StockObserver interface {
	Observe(operation string, quantity int64, err error, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) Observe(string, int64, error, time.Duration) {}
