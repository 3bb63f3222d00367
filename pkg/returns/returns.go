// Package returns computes investor-facing yield metrics and forward
// equity/value projections for rental properties.
package returns

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/propfolio/property-analytics/pkg/amortization"
	"github.com/propfolio/property-analytics/pkg/constants"
	"github.com/propfolio/property-analytics/pkg/mathutil"
)

// MonthlyRecord is one month of rent and expense history for a property.
type MonthlyRecord struct {
	Month         string // YYYY-MM, first of month
	RentCollected float64
	ExpenseTotal  float64
	Occupied      bool
}

// RecordSummary aggregates a property's monthly financial history.
type RecordSummary struct {
	Months          int
	TotalRent       float64
	TotalExpenses   float64
	TotalCashFlow   float64
	AverageRent     float64
	AverageExpenses float64
	AverageCashFlow float64
	OccupancyRate   float64 // fraction of months occupied, 0..1
}

// SummarizeMonthlyRecords totals and averages a property's history. An empty
// history is a valid steady state for a newly added property and yields an
// all-zero summary.
func SummarizeMonthlyRecords(records []MonthlyRecord) RecordSummary {
	summary := RecordSummary{Months: len(records)}
	if len(records) == 0 {
		return summary
	}

	occupied := 0
	for _, record := range records {
		summary.TotalRent += record.RentCollected
		summary.TotalExpenses += record.ExpenseTotal
		if record.Occupied {
			occupied++
		}
	}
	summary.TotalCashFlow = summary.TotalRent - summary.TotalExpenses

	months := float64(len(records))
	summary.AverageRent = summary.TotalRent / months
	summary.AverageExpenses = summary.TotalExpenses / months
	summary.AverageCashFlow = summary.TotalCashFlow / months
	summary.OccupancyRate = float64(occupied) / months

	return summary
}

// MetricsInput carries everything needed to compute performance metrics for
// one property. Loan is nil when the property is owned free and clear.
type MetricsInput struct {
	AcquisitionPrice float64
	CashInvested     float64
	CurrentValue     float64
	CurrentEquity    float64
	AnnualNOI        float64
	MonthlyCashFlow  []float64
	MonthsOwned      int
	Loan             *amortization.LoanTerms
	AppreciationRate float64 // annual percent; zero selects the default
}

// Metrics is the computed performance snapshot for one property.
type Metrics struct {
	CashOnCashReturn    float64
	CapRate             float64
	TotalROI            float64
	AnnualizedReturn    float64
	ProjectedValue5Yr   float64
	ProjectedValue10Yr  float64
	ProjectedEquity5Yr  float64
	ProjectedEquity10Yr float64
}

// Calculator computes return metrics. The embedded amortization engine
// supplies projected loan balances for the equity projections.
type Calculator struct {
	engine *amortization.Engine
	logger *zap.Logger
}

// NewCalculator creates a new calculator. If logger is nil a no-op logger is
// substituted.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{engine: amortization.NewEngine(logger), logger: logger}
}

// ComputeReturnMetrics computes cash-on-cash return, cap rate, total ROI,
// annualized return, and 5/10 year value and equity projections. Zero cash
// invested or zero value report the affected metrics as zero rather than
// NaN or Inf. Holdings shorter than a year report the simple return as the
// annualized figure to avoid extreme extrapolation.
func (c *Calculator) ComputeReturnMetrics(in MetricsInput) (Metrics, error) {
	var metrics Metrics

	averageCashFlow := 0.0
	totalCashFlow := 0.0
	if len(in.MonthlyCashFlow) > 0 {
		for _, flow := range in.MonthlyCashFlow {
			totalCashFlow += flow
		}
		averageCashFlow = totalCashFlow / float64(len(in.MonthlyCashFlow))
	}
	annualCashFlow := averageCashFlow * constants.MonthsPerYear

	metrics.CashOnCashReturn = mathutil.CalculatePercentage(annualCashFlow, in.CashInvested)
	metrics.CapRate = mathutil.CalculatePercentage(in.AnnualNOI, in.CurrentValue)

	totalReturns := (in.CurrentEquity - in.CashInvested) + totalCashFlow
	metrics.TotalROI = mathutil.CalculatePercentage(totalReturns, in.CashInvested)
	metrics.AnnualizedReturn = annualize(metrics.TotalROI, in.MonthsOwned)

	appreciationRate := in.AppreciationRate
	if appreciationRate == 0 {
		appreciationRate = constants.DefaultAppreciationRate
	}

	var err error
	metrics.ProjectedValue5Yr, metrics.ProjectedEquity5Yr, err =
		c.project(in, appreciationRate, constants.ProjectionHorizonShort)
	if err != nil {
		return metrics, err
	}
	metrics.ProjectedValue10Yr, metrics.ProjectedEquity10Yr, err =
		c.project(in, appreciationRate, constants.ProjectionHorizonLong)
	if err != nil {
		return metrics, err
	}

	c.logger.Debug(fmt.Sprintf("cash-on-cash %.2f%% cap rate %.2f%% total ROI %.2f%%",
		metrics.CashOnCashReturn, metrics.CapRate, metrics.TotalROI),
		zap.String("op", "returns.ComputeReturnMetrics"),
	)

	return metrics, nil
}

// project compounds the appreciation rate over the horizon and nets out the
// loan balance projected that far ahead.
func (c *Calculator) project(in MetricsInput, appreciationRate float64, years int) (value, equity float64, err error) {
	value = mathutil.Round(mathutil.CompoundGrowth(in.CurrentValue, appreciationRate, float64(years)))

	balance := 0.0
	if in.Loan != nil {
		balance, err = c.engine.BalanceAt(*in.Loan, years*constants.MonthsPerYear)
		if err != nil {
			return 0, 0, fmt.Errorf("projected loan balance at %d years: %w", years, err)
		}
	}
	equity = mathutil.Round(value - balance)
	return value, equity, nil
}

// annualize converts a total return percentage into a compound annual rate
// over the holding period. Sub-year holdings report the simple return;
// non-positive holding periods report zero.
func annualize(totalROIPercent float64, monthsOwned int) float64 {
	if monthsOwned <= 0 {
		return 0
	}
	if monthsOwned < constants.MonthsPerYear {
		return totalROIPercent
	}

	growth := 1 + totalROIPercent/constants.PercentageMultiplier
	if growth <= 0 {
		// Total loss of invested cash cannot be expressed as a compound
		// rate; report it flat.
		return -constants.PercentageMultiplier
	}

	years := float64(monthsOwned) / constants.MonthsPerYear
	return (math.Pow(growth, 1/years) - 1) * constants.PercentageMultiplier
}
