// Package config defines the data structures related to portfolio
// configuration and includes functions for loading and validating the config.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/propfolio/property-analytics/pkg/amortization"
	"github.com/propfolio/property-analytics/pkg/constants"
	"github.com/propfolio/property-analytics/pkg/validation"
)

// DateTimeLayout is the month format expected in config files and is also the
// output date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for property-analytics.
type Configuration struct {
	AsOfDate   string // analysis month; empty means the current month
	Properties []Property
	Analysis   AnalysisConfig `yaml:"analysis,omitempty"`
	Logging    LoggingConfig  `yaml:"logging,omitempty"`
	Output     OutputConfig   `yaml:"output,omitempty"`
}

// AnalysisConfig holds portfolio-wide analysis parameters.
type AnalysisConfig struct {
	ExtraPaymentScenarios []float64 // extra monthly amounts to simulate per loan
	AppreciationRate      float64   // annual percent; zero selects the default
	MaxSchedulePeriods    int       // zero selects the default cap
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Property describes one rental property and the read-only history supplied
// for it.
type Property struct {
	Name             string
	AcquisitionPrice float64
	CashInvested     float64
	PurchaseDate     string
	CurrentValue     float64 // optional; the latest valuation wins when unset
	Loan             *Loan
	MonthlyRecords   []MonthlyRecord
	Valuations       []Valuation
}

// Loan describes a property's fixed-rate mortgage.
type Loan struct {
	OriginalPrincipal float64
	CurrentBalance    float64
	InterestRate      float64 // annual percent
	MonthlyPayment    float64
	StartDate         string

	// Schedule is computed by ProcessSchedules, not read from config.
	Schedule *amortization.Schedule `yaml:"-" mapstructure:"-"`
}

// MonthlyRecord is one month of rent and expense history.
type MonthlyRecord struct {
	Month         string
	RentCollected float64
	ExpenseTotal  float64
	Occupied      bool
}

// Valuation is one point of estimated property value history.
type Valuation struct {
	Date           string
	EstimatedValue float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills in the analysis month and analysis parameters left
// unset in the configuration.
func (conf *Configuration) ApplyDefaults() {
	if conf.AsOfDate == "" {
		conf.AsOfDate = time.Now().Format(DateTimeLayout)
	}
	if conf.Analysis.AppreciationRate == 0 {
		conf.Analysis.AppreciationRate = constants.DefaultAppreciationRate
	}
	if conf.Analysis.MaxSchedulePeriods == 0 {
		conf.Analysis.MaxSchedulePeriods = constants.DefaultMaxPeriods
	}
}

// EffectiveValue returns the property's current value, preferring the most
// recent valuation point over the configured CurrentValue.
func (p *Property) EffectiveValue() float64 {
	value := p.CurrentValue
	latest := ""
	for _, valuation := range p.Valuations {
		if valuation.Date >= latest {
			latest = valuation.Date
			value = valuation.EstimatedValue
		}
	}
	return value
}

// Terms converts the loan to amortization terms anchored at the analysis
// month.
func (l *Loan) Terms(asOfDate string) amortization.LoanTerms {
	return amortization.LoanTerms{
		Principal:          l.CurrentBalance,
		AnnualInterestRate: l.InterestRate,
		MonthlyPayment:     l.MonthlyPayment,
		StartDate:          asOfDate,
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	for _, property := range conf.Properties {
		propertyWarnings := validation.ValidateProperty(validation.PropertyInfo{
			Name:         property.Name,
			PurchaseDate: property.PurchaseDate,
			CashInvested: property.CashInvested,
			RecordMonths: recordMonths(property.MonthlyRecords),
			ValuationDates: func() []string {
				dates := make([]string, 0, len(property.Valuations))
				for _, valuation := range property.Valuations {
					dates = append(dates, valuation.Date)
				}
				return dates
			}(),
		})
		warnings = append(warnings, propertyWarnings...)

		if property.Loan != nil {
			if err := amortization.ValidateTerms(property.Loan.Terms(conf.AsOfDate)); err != nil {
				warnings = append(warnings, fmt.Sprintf("Property '%s' loan cannot be scheduled: %v",
					property.Name, err))
			}
		}
	}

	return warnings
}

func recordMonths(records []MonthlyRecord) []string {
	months := make([]string, 0, len(records))
	for _, record := range records {
		months = append(months, record.Month)
	}
	return months
}
