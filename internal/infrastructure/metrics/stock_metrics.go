// Package metrics expone contadores Prometheus de las operaciones de stock.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/buyitem-api/internal/domain"
)

// Resultados posibles de una operación de stock (label "result").
const (
	ResultOK           = "ok"
	ResultInvalid      = "invalid"
	ResultInsufficient = "insufficient"
	ResultNotFound     = "not_found"
	ResultError        = "error"
)

// StockMetrics métricas de dispatch, block y restock.
type StockMetrics struct {
	operations *prometheus.CounterVec
	units      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewStockMetrics registra las métricas en registerer (DefaultRegisterer si es nil).
// Registrar dos veces devuelve los collectors ya existentes.
func NewStockMetrics(registerer prometheus.Registerer) *StockMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &StockMetrics{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "buyitem_stock_operations_total",
			Help: "Total de operaciones de stock por operación y resultado",
		}, []string{"operation", "result"}),
		units: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "buyitem_stock_units_total",
			Help: "Unidades movidas con éxito por operación",
		}, []string{"operation"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "buyitem_stock_operation_duration_seconds",
			Help:    "Duración de las operaciones de stock en segundos",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"operation"}),
	}
}

// Observe registra el resultado de una operación. quantity solo suma a units si err es nil.
func (m *StockMetrics) Observe(operation string, quantity int64, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := Result(err)
	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if result == ResultOK && quantity > 0 {
		m.units.WithLabelValues(operation).Add(float64(quantity))
	}
}

// Result clasifica un error de dominio en el label "result".
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrInvalidInput):
		return ResultInvalid
	case errors.Is(err, domain.ErrInsufficientStock):
		return ResultInsufficient
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
