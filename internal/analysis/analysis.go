// Package analysis ties the amortization, payoff, and returns calculators
// together into a per-property portfolio report.
package analysis

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/propfolio/property-analytics/internal/config"
	"github.com/propfolio/property-analytics/pkg/amortization"
	"github.com/propfolio/property-analytics/pkg/constants"
	"github.com/propfolio/property-analytics/pkg/datetime"
	"github.com/propfolio/property-analytics/pkg/mathutil"
	"github.com/propfolio/property-analytics/pkg/payoff"
	"github.com/propfolio/property-analytics/pkg/returns"
)

// PropertyAnalysis holds the computed results for one property.
type PropertyAnalysis struct {
	Name                 string
	Schedule             *amortization.Schedule // nil when owned free and clear
	Scenarios            []payoff.Scenario
	RecordSummary        returns.RecordSummary
	Metrics              returns.Metrics
	ObservedAppreciation float64 // percent change across the valuation history
}

// Report is the full portfolio analysis.
type Report struct {
	AsOfDate   string
	Properties []PropertyAnalysis
}

// Analyze processes every property in the configuration: amortization
// schedule, extra-payment scenarios, history summary, and return metrics.
func Analyze(logger *zap.Logger, conf config.Configuration) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	simulator := payoff.NewSimulator(logger)
	calculator := returns.NewCalculator(logger)

	report := &Report{AsOfDate: conf.AsOfDate}
	for i := range conf.Properties {
		property := &conf.Properties[i]

		result, err := analyzeProperty(logger, conf, property, simulator, calculator)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", property.Name, err)
		}
		report.Properties = append(report.Properties, *result)
	}

	return report, nil
}

func analyzeProperty(logger *zap.Logger, conf config.Configuration, property *config.Property,
	simulator *payoff.Simulator, calculator *returns.Calculator) (*PropertyAnalysis, error) {

	result := &PropertyAnalysis{Name: property.Name}

	records := make([]returns.MonthlyRecord, 0, len(property.MonthlyRecords))
	for _, record := range property.MonthlyRecords {
		records = append(records, returns.MonthlyRecord{
			Month:         record.Month,
			RentCollected: record.RentCollected,
			ExpenseTotal:  record.ExpenseTotal,
			Occupied:      record.Occupied,
		})
	}
	result.RecordSummary = returns.SummarizeMonthlyRecords(records)

	debtService := 0.0
	currentValue := property.EffectiveValue()
	currentEquity := currentValue
	var loanTerms *amortization.LoanTerms

	if property.Loan != nil {
		debtService = property.Loan.MonthlyPayment
		currentEquity = currentValue - property.Loan.CurrentBalance

		terms := property.Loan.Terms(conf.AsOfDate)
		loanTerms = &terms

		result.Schedule = property.Loan.Schedule
		if result.Schedule == nil {
			schedule, err := amortization.NewEngine(logger).GenerateSchedule(terms)
			if err != nil {
				return nil, err
			}
			result.Schedule = schedule
		}

		scenarios, err := simulator.SimulateExtraPayments(
			property.Loan.CurrentBalance, property.Loan.InterestRate,
			property.Loan.MonthlyPayment, conf.Analysis.ExtraPaymentScenarios, conf.AsOfDate)
		if err != nil {
			return nil, err
		}
		result.Scenarios = scenarios
	}

	// Net cash flow per recorded month, after debt service.
	cashFlow := make([]float64, 0, len(records))
	for _, record := range records {
		cashFlow = append(cashFlow, record.RentCollected-record.ExpenseTotal-debtService)
	}

	monthsOwned := 0
	if property.PurchaseDate != "" {
		var err error
		monthsOwned, err = datetime.MonthsBetween(property.PurchaseDate, conf.AsOfDate)
		if err != nil {
			return nil, err
		}
	}

	annualNOI := (result.RecordSummary.AverageRent - result.RecordSummary.AverageExpenses) *
		constants.MonthsPerYear

	metrics, err := calculator.ComputeReturnMetrics(returns.MetricsInput{
		AcquisitionPrice: property.AcquisitionPrice,
		CashInvested:     property.CashInvested,
		CurrentValue:     currentValue,
		CurrentEquity:    currentEquity,
		AnnualNOI:        annualNOI,
		MonthlyCashFlow:  cashFlow,
		MonthsOwned:      monthsOwned,
		Loan:             loanTerms,
		AppreciationRate: conf.Analysis.AppreciationRate,
	})
	if err != nil {
		return nil, err
	}
	result.Metrics = metrics

	result.ObservedAppreciation = observedAppreciation(property.Valuations)

	logger.Debug(fmt.Sprintf("%s: cash-on-cash %.2f%% over %d months of history",
		property.Name, metrics.CashOnCashReturn, result.RecordSummary.Months),
		zap.String("op", "analysis.Analyze"),
	)

	return result, nil
}

// observedAppreciation reports the percent change between the earliest and
// latest valuation points, or 0 when fewer than two exist.
func observedAppreciation(valuations []config.Valuation) float64 {
	if len(valuations) < 2 {
		return 0
	}

	earliest, latest := valuations[0], valuations[0]
	for _, valuation := range valuations[1:] {
		if valuation.Date < earliest.Date {
			earliest = valuation
		}
		if valuation.Date >= latest.Date {
			latest = valuation
		}
	}
	if earliest.EstimatedValue == 0 {
		return 0
	}
	return mathutil.CalculatePercentage(latest.EstimatedValue-earliest.EstimatedValue, earliest.EstimatedValue)
}
