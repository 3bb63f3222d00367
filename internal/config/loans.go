package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/propfolio/property-analytics/pkg/amortization"
)

// ProcessSchedules iterates through all properties and produces the remaining
// amortization schedule for each mortgaged one, anchored at the analysis
// month. Schedules for loans that fail validation surface as errors rather
// than silently truncated output.
func (conf *Configuration) ProcessSchedules(logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := amortization.NewEngine(logger)
	if conf.Analysis.MaxSchedulePeriods > 0 {
		engine.SetMaxPeriods(conf.Analysis.MaxSchedulePeriods)
	}

	for i := range conf.Properties {
		loan := conf.Properties[i].Loan
		if loan == nil {
			continue
		}
		schedule, err := engine.GenerateSchedule(loan.Terms(conf.AsOfDate))
		if err != nil {
			return fmt.Errorf("property %s: %w", conf.Properties[i].Name, err)
		}
		loan.Schedule = schedule

		logger.Debug(fmt.Sprintf("%s: %d payments remain through %s",
			conf.Properties[i].Name, schedule.Summary.TotalPayments, schedule.Summary.PayoffDate),
			zap.String("op", "config.ProcessSchedules"),
		)
	}

	return nil
}
