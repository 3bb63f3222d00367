// Package payoff simulates extra-payment payoff scenarios against a baseline
// amortization schedule.
package payoff

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/propfolio/property-analytics/pkg/amortization"
)

// Scenario reports the effect of one hypothetical extra monthly payment.
type Scenario struct {
	ExtraMonthlyAmount float64
	PayoffDate         string
	MonthsSaved        int
	InterestSaved      float64
	TotalInterest      float64
}

// Simulator recomputes payoff timelines for hypothetical extra payments.
type Simulator struct {
	engine *amortization.Engine
	logger *zap.Logger
}

// NewSimulator creates a new simulator. If logger is nil a no-op logger is
// substituted.
func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{engine: amortization.NewEngine(logger), logger: logger}
}

// SimulateExtraPayments runs one scenario per extra amount, each independent
// of the others, and diffs it against the zero-extra baseline. The baseline
// is computed once and reused across all scenarios. An extra amount of zero
// is valid and yields the baseline itself. Results preserve input order.
func (s *Simulator) SimulateExtraPayments(currentBalance, annualRatePercent, monthlyPayment float64, extraAmounts []float64, asOfDate string) ([]Scenario, error) {
	baseline, err := s.engine.GenerateRemainingSchedule(currentBalance, annualRatePercent, monthlyPayment, asOfDate)
	if err != nil {
		return nil, fmt.Errorf("baseline schedule: %w", err)
	}

	baselineInterest := baseline.Summary.TotalInterest.InexactFloat64()
	scenarios := make([]Scenario, 0, len(extraAmounts))

	for _, extra := range extraAmounts {
		if extra < 0 {
			return nil, fmt.Errorf("%w: extra payment must not be negative, got %.2f",
				amortization.ErrInvalidTerms, extra)
		}

		schedule := baseline
		if extra > 0 {
			schedule, err = s.engine.GenerateRemainingSchedule(currentBalance, annualRatePercent, monthlyPayment+extra, asOfDate)
			if err != nil {
				return nil, fmt.Errorf("scenario with %.2f extra: %w", extra, err)
			}
		}

		totalInterest := schedule.Summary.TotalInterest.InexactFloat64()
		scenario := Scenario{
			ExtraMonthlyAmount: extra,
			PayoffDate:         schedule.Summary.PayoffDate,
			MonthsSaved:        baseline.Summary.TotalPayments - schedule.Summary.TotalPayments,
			InterestSaved:      baselineInterest - totalInterest,
			TotalInterest:      totalInterest,
		}
		scenarios = append(scenarios, scenario)

		s.logger.Debug(fmt.Sprintf("extra payment %.2f pays off at %s saving %d months and %.2f interest",
			extra, scenario.PayoffDate, scenario.MonthsSaved, scenario.InterestSaved),
			zap.String("op", "payoff.SimulateExtraPayments"),
		)
	}

	return scenarios, nil
}
