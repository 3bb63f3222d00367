// Package server exposes the portfolio analysis as a small HTTP API: upload
// a portfolio YAML, receive the computed report as JSON. Reports are cached
// by upload digest since the underlying computation is pure.
package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/propfolio/property-analytics/internal/analysis"
	"github.com/propfolio/property-analytics/internal/cache"
	"github.com/propfolio/property-analytics/internal/config"
	"github.com/propfolio/property-analytics/pkg/constants"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	cache         cache.Repository
}

// NewHandler constructs the HTTP handler that serves the analysis API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := constants.DefaultMaxUploadSizeBytes
	var repository cache.Repository = cache.NewMemory()
	if cfg != nil {
		if cfg.UploadSizeBytes() > 0 {
			maxUploadSize = cfg.UploadSizeBytes()
		}
		if cfg.RedisAddress != "" {
			repository = cache.NewRedis(cfg.RedisAddress)
		}
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		cache:         repository,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", h.handleAnalyze)
	mux.HandleFunc("/api/version", h.handleVersion)
	return mux
}

type analyzeResponse struct {
	AsOfDate   string           `json:"asOfDate"`
	Warnings   []string         `json:"warnings,omitempty"`
	Duration   string           `json:"duration"`
	Properties []propertyResult `json:"properties"`
}

type propertyResult struct {
	Name                 string           `json:"name"`
	History              historyResult    `json:"history"`
	Metrics              metricsResult    `json:"metrics"`
	Mortgage             *mortgageResult  `json:"mortgage,omitempty"`
	Scenarios            []scenarioResult `json:"scenarios,omitempty"`
	ObservedAppreciation float64          `json:"observedAppreciation"`
}

type historyResult struct {
	Months        int     `json:"months"`
	TotalRent     float64 `json:"totalRent"`
	TotalExpenses float64 `json:"totalExpenses"`
	TotalCashFlow float64 `json:"totalCashFlow"`
	OccupancyRate float64 `json:"occupancyRate"`
}

type metricsResult struct {
	CashOnCashReturn    float64 `json:"cashOnCashReturn"`
	CapRate             float64 `json:"capRate"`
	TotalROI            float64 `json:"totalRoi"`
	AnnualizedReturn    float64 `json:"annualizedReturn"`
	ProjectedValue5Yr   float64 `json:"projectedValue5yr"`
	ProjectedValue10Yr  float64 `json:"projectedValue10yr"`
	ProjectedEquity5Yr  float64 `json:"projectedEquity5yr"`
	ProjectedEquity10Yr float64 `json:"projectedEquity10yr"`
}

type mortgageResult struct {
	PaymentsRemaining int     `json:"paymentsRemaining"`
	PayoffDate        string  `json:"payoffDate"`
	InterestRemaining float64 `json:"interestRemaining"`
}

type scenarioResult struct {
	ExtraMonthlyAmount float64 `json:"extraMonthlyAmount"`
	PayoffDate         string  `json:"payoffDate"`
	MonthsSaved        int     `json:"monthsSaved"`
	InterestSaved      float64 `json:"interestSaved"`
	TotalInterest      float64 `json:"totalInterest"`
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxUploadSize+1))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	if int64(len(body)) > h.maxUploadSize {
		http.Error(w, "portfolio upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		http.Error(w, "empty portfolio upload", http.StatusBadRequest)
		return
	}

	digest := sha256.Sum256(body)
	key := "report:" + hex.EncodeToString(digest[:])
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		h.logger.Debug("serving cached report",
			zap.String("op", "server.handleAnalyze"),
			zap.String("key", key),
		)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, cached)
		return
	}

	started := time.Now()
	conf, err := parsePortfolio(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid portfolio: %v", err), http.StatusBadRequest)
		return
	}

	warnings := conf.ValidateConfiguration()

	if err := conf.ProcessSchedules(h.logger); err != nil {
		http.Error(w, fmt.Sprintf("failed to process schedules: %v", err), http.StatusUnprocessableEntity)
		return
	}

	report, err := analysis.Analyze(h.logger, *conf)
	if err != nil {
		h.logger.Error("analysis failed",
			zap.String("op", "server.handleAnalyze"),
			zap.Error(err),
		)
		http.Error(w, fmt.Sprintf("analysis failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	response := buildResponse(report, warnings, time.Since(started))
	payload, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Set(r.Context(), key, string(payload)); err != nil {
		h.logger.Warn("failed to cache report",
			zap.String("op", "server.handleAnalyze"),
			zap.Error(err),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"version": h.version})
}

// parsePortfolio decodes an uploaded YAML document using the same viper
// pipeline as the CLI so key handling matches config files exactly.
func parsePortfolio(body []byte) (*config.Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(body)); err != nil {
		return nil, err
	}

	var conf config.Configuration
	if err := v.Unmarshal(&conf); err != nil {
		return nil, err
	}
	conf.ApplyDefaults()
	return &conf, nil
}

func buildResponse(report *analysis.Report, warnings []string, duration time.Duration) analyzeResponse {
	response := analyzeResponse{
		AsOfDate: report.AsOfDate,
		Warnings: warnings,
		Duration: duration.String(),
	}

	for _, property := range report.Properties {
		result := propertyResult{
			Name: property.Name,
			History: historyResult{
				Months:        property.RecordSummary.Months,
				TotalRent:     property.RecordSummary.TotalRent,
				TotalExpenses: property.RecordSummary.TotalExpenses,
				TotalCashFlow: property.RecordSummary.TotalCashFlow,
				OccupancyRate: property.RecordSummary.OccupancyRate,
			},
			Metrics: metricsResult{
				CashOnCashReturn:    property.Metrics.CashOnCashReturn,
				CapRate:             property.Metrics.CapRate,
				TotalROI:            property.Metrics.TotalROI,
				AnnualizedReturn:    property.Metrics.AnnualizedReturn,
				ProjectedValue5Yr:   property.Metrics.ProjectedValue5Yr,
				ProjectedValue10Yr:  property.Metrics.ProjectedValue10Yr,
				ProjectedEquity5Yr:  property.Metrics.ProjectedEquity5Yr,
				ProjectedEquity10Yr: property.Metrics.ProjectedEquity10Yr,
			},
			ObservedAppreciation: property.ObservedAppreciation,
		}

		if property.Schedule != nil {
			result.Mortgage = &mortgageResult{
				PaymentsRemaining: property.Schedule.Summary.TotalPayments,
				PayoffDate:        property.Schedule.Summary.PayoffDate,
				InterestRemaining: property.Schedule.Summary.TotalInterest.InexactFloat64(),
			}
		}

		for _, scenario := range property.Scenarios {
			result.Scenarios = append(result.Scenarios, scenarioResult{
				ExtraMonthlyAmount: scenario.ExtraMonthlyAmount,
				PayoffDate:         scenario.PayoffDate,
				MonthsSaved:        scenario.MonthsSaved,
				InterestSaved:      scenario.InterestSaved,
				TotalInterest:      scenario.TotalInterest,
			})
		}

		response.Properties = append(response.Properties, result)
	}

	return response
}
