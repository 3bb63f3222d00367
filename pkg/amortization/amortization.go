// Package amortization generates fixed-rate loan amortization schedules and
// single-period payment breakdowns. Monetary arithmetic is carried out in
// decimal cents so cumulative totals reconcile exactly against the original
// principal over arbitrarily long schedules.
package amortization

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/propfolio/property-analytics/pkg/constants"
	"github.com/propfolio/property-analytics/pkg/datetime"
)

var (
	// ErrInvalidTerms indicates non-positive principal or payment, a negative
	// rate, or an unparseable start date.
	ErrInvalidTerms = errors.New("invalid loan terms")

	// ErrNonAmortizing indicates the monthly payment does not exceed the
	// first-period interest, so the balance would never reach zero.
	ErrNonAmortizing = errors.New("monthly payment does not cover monthly interest")

	// ErrMaxPeriodsExceeded indicates the schedule did not reach a zero
	// balance within the configured period cap.
	ErrMaxPeriodsExceeded = errors.New("schedule exceeds maximum periods")
)

// LoanTerms describes a fixed-rate, fully-amortizing loan. Principal is the
// outstanding balance the schedule starts from, which for an existing loan is
// the current balance rather than the original amount.
type LoanTerms struct {
	Principal          float64
	AnnualInterestRate float64 // percent, e.g. 6.875
	MonthlyPayment     float64
	StartDate          string // YYYY-MM
}

// Breakdown holds the principal and interest portions of a single payment.
type Breakdown struct {
	Principal float64
	Interest  float64
}

// Entry holds the values for one payment period.
type Entry struct {
	Period              int
	Date                string
	Payment             decimal.Decimal
	Principal           decimal.Decimal
	Interest            decimal.Decimal
	RemainingBalance    decimal.Decimal
	CumulativePrincipal decimal.Decimal
	CumulativeInterest  decimal.Decimal
}

// Summary aggregates a schedule.
type Summary struct {
	TotalPayments  int
	TotalPrincipal decimal.Decimal
	TotalInterest  decimal.Decimal
	PayoffDate     string
	Terms          LoanTerms
}

// Schedule is the ordered, chronological sequence of payment entries for a
// loan, one per month until payoff.
type Schedule struct {
	Entries []Entry
	Summary Summary
}

// monthlyRate converts an annual percentage rate to a monthly decimal rate.
func monthlyRate(annualRatePercent float64) decimal.Decimal {
	return decimal.NewFromFloat(annualRatePercent /
		(constants.PercentageMultiplier * constants.MonthsPerYear))
}

// ComputePaymentBreakdown splits a single payment into principal and interest
// portions given the current balance. The principal portion is floored at
// zero when the payment does not cover the accrued interest.
func ComputePaymentBreakdown(balance, annualRatePercent, monthlyPayment float64) Breakdown {
	interest := decimal.NewFromFloat(balance).
		Mul(monthlyRate(annualRatePercent)).
		Round(constants.CentPlaces)
	principal := decimal.NewFromFloat(monthlyPayment).
		Round(constants.CentPlaces).
		Sub(interest)
	if principal.IsNegative() {
		principal = decimal.Zero
	}
	return Breakdown{
		Principal: principal.InexactFloat64(),
		Interest:  interest.InexactFloat64(),
	}
}

// Engine generates amortization schedules.
type Engine struct {
	logger     *zap.Logger
	maxPeriods int
}

// NewEngine creates a new schedule engine. If logger is nil a no-op logger is
// substituted.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, maxPeriods: constants.DefaultMaxPeriods}
}

// SetMaxPeriods overrides the schedule length cap.
func (e *Engine) SetMaxPeriods(periods int) {
	if periods > 0 {
		e.maxPeriods = periods
	}
}

// ValidateTerms checks loan terms for the error taxonomy: non-positive
// principal or payment, negative rate, bad start date, and the
// non-amortizing case where the payment cannot cover one month of interest.
func ValidateTerms(terms LoanTerms) error {
	if terms.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %.2f", ErrInvalidTerms, terms.Principal)
	}
	if terms.AnnualInterestRate < 0 {
		return fmt.Errorf("%w: interest rate must not be negative, got %.3f", ErrInvalidTerms, terms.AnnualInterestRate)
	}
	if terms.MonthlyPayment <= 0 {
		return fmt.Errorf("%w: monthly payment must be positive, got %.2f", ErrInvalidTerms, terms.MonthlyPayment)
	}
	if _, err := time.Parse(datetime.DateTimeLayout, terms.StartDate); err != nil {
		return fmt.Errorf("%w: start date %q is not in %s format", ErrInvalidTerms, terms.StartDate, datetime.DateTimeLayout)
	}

	firstInterest := decimal.NewFromFloat(terms.Principal).
		Mul(monthlyRate(terms.AnnualInterestRate)).
		Round(constants.CentPlaces)
	payment := decimal.NewFromFloat(terms.MonthlyPayment).Round(constants.CentPlaces)
	if payment.LessThanOrEqual(firstInterest) {
		return fmt.Errorf("%w: payment %s <= first-period interest %s",
			ErrNonAmortizing, payment.StringFixed(constants.CentPlaces), firstInterest.StringFixed(constants.CentPlaces))
	}
	return nil
}

// GenerateSchedule creates the complete amortization schedule for a loan,
// iterating month by month from the start date until the balance reaches
// exactly zero. The final payment is clamped to the remaining balance so the
// schedule never overshoots into a negative balance.
func (e *Engine) GenerateSchedule(terms LoanTerms) (*Schedule, error) {
	if err := ValidateTerms(terms); err != nil {
		return nil, err
	}

	balance := decimal.NewFromFloat(terms.Principal).Round(constants.CentPlaces)
	payment := decimal.NewFromFloat(terms.MonthlyPayment).Round(constants.CentPlaces)
	rate := monthlyRate(terms.AnnualInterestRate)

	entries := make([]Entry, 0, e.maxPeriods)
	cumulativePrincipal := decimal.Zero
	cumulativeInterest := decimal.Zero
	date := terms.StartDate

	for period := 1; period <= e.maxPeriods; period++ {
		interest := balance.Mul(rate).Round(constants.CentPlaces)
		principal := payment.Sub(interest)
		periodPayment := payment

		if principal.GreaterThanOrEqual(balance) {
			// Final period: settle the exact remaining balance.
			principal = balance
			periodPayment = principal.Add(interest)
		}

		balance = balance.Sub(principal)
		cumulativePrincipal = cumulativePrincipal.Add(principal)
		cumulativeInterest = cumulativeInterest.Add(interest)

		entries = append(entries, Entry{
			Period:              period,
			Date:                date,
			Payment:             periodPayment,
			Principal:           principal,
			Interest:            interest,
			RemainingBalance:    balance,
			CumulativePrincipal: cumulativePrincipal,
			CumulativeInterest:  cumulativeInterest,
		})

		if balance.IsZero() {
			break
		}

		var err error
		date, err = datetime.OffsetDate(date, datetime.DateTimeLayout, 1)
		if err != nil {
			return nil, err
		}
	}

	if !balance.IsZero() {
		return nil, fmt.Errorf("%w: balance %s remains after %d periods",
			ErrMaxPeriodsExceeded, balance.StringFixed(constants.CentPlaces), e.maxPeriods)
	}

	final := entries[len(entries)-1]
	e.logger.Debug(fmt.Sprintf("schedule complete after %d periods with %s total interest",
		final.Period, cumulativeInterest.StringFixed(constants.CentPlaces)),
		zap.String("op", "amortization.GenerateSchedule"),
	)

	return &Schedule{
		Entries: entries,
		Summary: Summary{
			TotalPayments:  final.Period,
			TotalPrincipal: cumulativePrincipal,
			TotalInterest:  cumulativeInterest,
			PayoffDate:     final.Date,
			Terms:          terms,
		},
	}, nil
}

// GenerateRemainingSchedule creates the schedule for an existing loan
// starting from its current outstanding balance as of the given month.
func (e *Engine) GenerateRemainingSchedule(currentBalance, annualRatePercent, monthlyPayment float64, asOfDate string) (*Schedule, error) {
	return e.GenerateSchedule(LoanTerms{
		Principal:          currentBalance,
		AnnualInterestRate: annualRatePercent,
		MonthlyPayment:     monthlyPayment,
		StartDate:          asOfDate,
	})
}

// BalanceAt returns the projected remaining balance the given number of
// months after the schedule start. A horizon at or beyond payoff yields zero.
func (e *Engine) BalanceAt(terms LoanTerms, monthsAhead int) (float64, error) {
	if monthsAhead <= 0 {
		return terms.Principal, nil
	}
	schedule, err := e.GenerateSchedule(terms)
	if err != nil {
		return 0, err
	}
	if monthsAhead >= len(schedule.Entries) {
		return 0, nil
	}
	return schedule.Entries[monthsAhead-1].RemainingBalance.InexactFloat64(), nil
}
