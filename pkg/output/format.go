// Package output provides utilities for formatting and displaying analysis results.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/propfolio/property-analytics/internal/analysis"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(report *analysis.Report) {
	p := message.NewPrinter(language.English)
	_, _ = p.Printf("Portfolio analysis as of %s\n", report.AsOfDate)

	for _, property := range report.Properties {
		_, _ = p.Printf("\n--- %s ---\n", property.Name)

		summary := property.RecordSummary
		if summary.Months > 0 {
			_, _ = p.Printf("History: %d months | rent $%.2f | expenses $%.2f | cash flow $%.2f | occupancy %.0f%%\n",
				summary.Months, summary.TotalRent, summary.TotalExpenses, summary.TotalCashFlow,
				summary.OccupancyRate*100)
		} else {
			_, _ = p.Printf("History: none recorded yet\n")
		}

		metrics := property.Metrics
		_, _ = p.Printf("Returns: cash-on-cash %.2f%% | cap rate %.2f%% | total ROI %.2f%% | annualized %.2f%%\n",
			metrics.CashOnCashReturn, metrics.CapRate, metrics.TotalROI, metrics.AnnualizedReturn)
		_, _ = p.Printf("Projected: 5yr value $%.2f equity $%.2f | 10yr value $%.2f equity $%.2f\n",
			metrics.ProjectedValue5Yr, metrics.ProjectedEquity5Yr,
			metrics.ProjectedValue10Yr, metrics.ProjectedEquity10Yr)
		if property.ObservedAppreciation != 0 {
			_, _ = p.Printf("Observed appreciation across valuations: %.2f%%\n", property.ObservedAppreciation)
		}

		if property.Schedule != nil {
			s := property.Schedule.Summary
			_, _ = p.Printf("Mortgage: %d payments remain | payoff %s | interest remaining $%.2f\n",
				s.TotalPayments, s.PayoffDate, s.TotalInterest.InexactFloat64())
		}

		if len(property.Scenarios) > 0 {
			_, _ = p.Printf("Extra     | Payoff  | Months | Interest\n")
			_, _ = p.Printf("_____     | ______  | ______ | ________\n")
			for _, scenario := range property.Scenarios {
				_, _ = p.Printf("$%.2f | %s | %d | $%.2f saved\n",
					scenario.ExtraMonthlyAmount, scenario.PayoffDate,
					scenario.MonthsSaved, scenario.InterestSaved)
			}
		}
	}
}

// CsvFormat outputs in comma-separated value format: a metrics table followed
// by a payoff scenario table.
func CsvFormat(report *analysis.Report) {
	fmt.Printf(`"property","months","totalCashFlow","occupancyRate","cashOnCash","capRate","totalRoi","annualizedReturn","payoffDate","interestRemaining"`)
	fmt.Printf("\n")
	for _, property := range report.Properties {
		payoffDate := ""
		interestRemaining := 0.0
		if property.Schedule != nil {
			payoffDate = property.Schedule.Summary.PayoffDate
			interestRemaining = property.Schedule.Summary.TotalInterest.InexactFloat64()
		}
		fmt.Printf(`"%s","%d","%.2f","%.4f","%.2f","%.2f","%.2f","%.2f","%s","%.2f"`,
			property.Name, property.RecordSummary.Months, property.RecordSummary.TotalCashFlow,
			property.RecordSummary.OccupancyRate, property.Metrics.CashOnCashReturn,
			property.Metrics.CapRate, property.Metrics.TotalROI, property.Metrics.AnnualizedReturn,
			payoffDate, interestRemaining)
		fmt.Printf("\n")
	}

	fmt.Printf("\n")
	fmt.Printf(`"property","extraMonthly","payoffDate","monthsSaved","interestSaved"`)
	fmt.Printf("\n")
	for _, property := range report.Properties {
		for _, scenario := range property.Scenarios {
			fmt.Printf(`"%s","%.2f","%s","%d","%.2f"`,
				property.Name, scenario.ExtraMonthlyAmount, scenario.PayoffDate,
				scenario.MonthsSaved, scenario.InterestSaved)
			fmt.Printf("\n")
		}
	}
}
