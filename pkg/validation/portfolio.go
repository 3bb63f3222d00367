// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
)

// PropertyInfo carries the fields of a property relevant to validation.
type PropertyInfo struct {
	Name           string
	PurchaseDate   string
	CashInvested   float64
	RecordMonths   []string
	ValuationDates []string
}

// ValidateProperty checks a property's history for inconsistencies and
// returns human-readable warnings. None of these are fatal; analysis
// proceeds with degenerate aggregates where needed.
func ValidateProperty(property PropertyInfo) []string {
	var warnings []string

	if property.CashInvested == 0 {
		warnings = append(warnings,
			fmt.Sprintf("Property '%s' has zero cash invested - cash-on-cash return and ROI will report as 0",
				property.Name))
	}

	for _, month := range property.RecordMonths {
		if property.PurchaseDate != "" && month < property.PurchaseDate {
			warnings = append(warnings,
				fmt.Sprintf("Property '%s' has a monthly record at %s before its purchase date %s",
					property.Name, month, property.PurchaseDate))
		}
	}

	previous := ""
	for _, date := range property.ValuationDates {
		if previous != "" && date < previous {
			warnings = append(warnings,
				fmt.Sprintf("Property '%s' valuations are out of chronological order (%s after %s)",
					property.Name, date, previous))
		}
		previous = date
	}

	return warnings
}
