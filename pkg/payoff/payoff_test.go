package payoff

import (
	"errors"
	"math"
	"testing"

	"github.com/propfolio/property-analytics/pkg/amortization"
	"github.com/propfolio/property-analytics/pkg/datetime"
)

func TestSimulateExtraPaymentsZeroExtraIdentity(t *testing.T) {
	simulator := NewSimulator(nil)

	scenarios, err := simulator.SimulateExtraPayments(200000, 6.0, 1199.10, []float64{0}, "2025-01")
	if err != nil {
		t.Fatalf("SimulateExtraPayments() error = %v", err)
	}
	if len(scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(scenarios))
	}

	scenario := scenarios[0]
	if scenario.MonthsSaved != 0 {
		t.Errorf("monthsSaved = %d, expected 0", scenario.MonthsSaved)
	}
	if scenario.InterestSaved != 0 {
		t.Errorf("interestSaved = %.2f, expected 0", scenario.InterestSaved)
	}
}

func TestSimulateExtraPaymentsConcreteScenario(t *testing.T) {
	simulator := NewSimulator(nil)

	scenarios, err := simulator.SimulateExtraPayments(200000, 6.0, 1199.10, []float64{0, 200}, "2025-01")
	if err != nil {
		t.Fatalf("SimulateExtraPayments() error = %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(scenarios))
	}

	baseline, extra := scenarios[0], scenarios[1]
	if extra.MonthsSaved <= 0 {
		t.Errorf("monthsSaved = %d, expected > 0", extra.MonthsSaved)
	}
	if extra.InterestSaved <= 0 {
		t.Errorf("interestSaved = %.2f, expected > 0", extra.InterestSaved)
	}

	earlier, err := datetime.DateBeforeDate(extra.PayoffDate, baseline.PayoffDate)
	if err != nil {
		t.Fatalf("DateBeforeDate() error = %v", err)
	}
	if !earlier {
		t.Errorf("payoff date %s should precede baseline payoff %s", extra.PayoffDate, baseline.PayoffDate)
	}

	// 109 months and just under $79.8k of interest for this loan.
	if extra.MonthsSaved != 109 {
		t.Errorf("monthsSaved = %d, expected 109", extra.MonthsSaved)
	}
	if math.Abs(extra.InterestSaved-79800.87) > 0.01 {
		t.Errorf("interestSaved = %.2f, expected 79800.87", extra.InterestSaved)
	}
	if math.Abs(extra.TotalInterest-151876.18) > 0.01 {
		t.Errorf("totalInterest = %.2f, expected 151876.18", extra.TotalInterest)
	}
}

func TestSimulateExtraPaymentsMonotonicity(t *testing.T) {
	simulator := NewSimulator(nil)

	extras := []float64{0, 50, 100, 200, 400, 800}
	scenarios, err := simulator.SimulateExtraPayments(200000, 6.0, 1199.10, extras, "2025-01")
	if err != nil {
		t.Fatalf("SimulateExtraPayments() error = %v", err)
	}

	for i := 1; i < len(scenarios); i++ {
		previous, current := scenarios[i-1], scenarios[i]
		if current.MonthsSaved < previous.MonthsSaved {
			t.Errorf("monthsSaved decreased from %d to %d as extra rose from %.0f to %.0f",
				previous.MonthsSaved, current.MonthsSaved,
				previous.ExtraMonthlyAmount, current.ExtraMonthlyAmount)
		}
		if current.InterestSaved < previous.InterestSaved {
			t.Errorf("interestSaved decreased from %.2f to %.2f as extra rose from %.0f to %.0f",
				previous.InterestSaved, current.InterestSaved,
				previous.ExtraMonthlyAmount, current.ExtraMonthlyAmount)
		}
	}
}

func TestSimulateExtraPaymentsEmptyInput(t *testing.T) {
	simulator := NewSimulator(nil)

	scenarios, err := simulator.SimulateExtraPayments(200000, 6.0, 1199.10, nil, "2025-01")
	if err != nil {
		t.Fatalf("SimulateExtraPayments() error = %v", err)
	}
	if len(scenarios) != 0 {
		t.Errorf("expected no scenarios for empty input, got %d", len(scenarios))
	}
}

func TestSimulateExtraPaymentsInvalidInput(t *testing.T) {
	simulator := NewSimulator(nil)

	tests := []struct {
		name      string
		balance   float64
		rate      float64
		payment   float64
		extras    []float64
		wantError error
	}{
		{
			name:      "Negative extra amount",
			balance:   200000,
			rate:      6.0,
			payment:   1199.10,
			extras:    []float64{-50},
			wantError: amortization.ErrInvalidTerms,
		},
		{
			name:      "Non-amortizing baseline",
			balance:   200000,
			rate:      6.0,
			payment:   900.00,
			extras:    []float64{100},
			wantError: amortization.ErrNonAmortizing,
		},
		{
			name:      "Zero balance",
			balance:   0,
			rate:      6.0,
			payment:   1199.10,
			extras:    []float64{100},
			wantError: amortization.ErrInvalidTerms,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := simulator.SimulateExtraPayments(tt.balance, tt.rate, tt.payment, tt.extras, "2025-01")
			if !errors.Is(err, tt.wantError) {
				t.Errorf("SimulateExtraPayments() error = %v, expected %v", err, tt.wantError)
			}
		})
	}
}
