// Package constants provides shared constants for the property-analytics application.
package constants

// DateTimeLayout is the month format expected in config files and is also the
// output date format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CentPlaces is the number of decimal places kept in monetary arithmetic
	CentPlaces = 2

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultMaxPeriods bounds schedule generation at 50 years of monthly
	// payments; the non-amortizing guard rejects bad input well before this
	// is reached.
	DefaultMaxPeriods = 600

	// DefaultAppreciationRate is the assumed annual property appreciation in
	// percent used for forward value and equity projections.
	DefaultAppreciationRate = 3.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "portfolio.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "portfolio.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the analysis API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML portfolios (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Projection horizons in years for forward equity and value estimates.
const (
	ProjectionHorizonShort = 5
	ProjectionHorizonLong  = 10
)
