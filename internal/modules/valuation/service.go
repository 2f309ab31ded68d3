package valuation

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/dividend-calculator/internal/modules/valuation/workers"
)

// Service evaluates scenarios against the three dividend discount models
type Service struct {
	defaultHorizon int
	pool           *workers.WorkerPool
	log            zerolog.Logger
}

// NewService creates a new valuation service.
// A non-positive defaultHorizon falls back to DefaultHorizon.
func NewService(defaultHorizon int, pool *workers.WorkerPool, log zerolog.Logger) *Service {
	if defaultHorizon <= 0 {
		defaultHorizon = DefaultHorizon
	}
	if pool == nil {
		pool = workers.NewWorkerPool(0)
	}
	return &Service{
		defaultHorizon: defaultHorizon,
		pool:           pool,
		log:            log.With().Str("service", "valuation").Logger(),
	}
}

// DefaultHorizon returns the display horizon applied to inputs without one
func (s *Service) DefaultHorizon() int {
	return s.defaultHorizon
}

func (s *Service) normalize(in ValuationInput) ValuationInput {
	if in.Horizon <= 0 {
		in.Horizon = s.defaultHorizon
	}
	return in
}

// Calculate runs all three models for one input
func (s *Service) Calculate(in ValuationInput) Report {
	in = s.normalize(in)

	report := Report{
		ID:           uuid.NewString(),
		Input:        in,
		Constant:     ConstantDividend(in),
		Growth:       ConstantGrowth(in),
		Changing:     ChangingGrowth(in),
		CalculatedAt: time.Now().UTC(),
	}

	s.log.Debug().
		Str("report_id", report.ID).
		Bool("constant_valid", report.Constant.Valid()).
		Bool("growth_valid", report.Growth.Valid()).
		Bool("changing_valid", report.Changing.Valid()).
		Msg("Valuation calculated")

	return report
}

// CalculateModel runs a single model by name
func (s *Service) CalculateModel(name string, in ValuationInput) (ValuationResult, error) {
	m, err := ParseModel(name)
	if err != nil {
		return ValuationResult{}, err
	}
	return Evaluate(m, s.normalize(in))
}

// CalculateBatch runs Calculate for every input in parallel.
// Reports are returned in input order.
func (s *Service) CalculateBatch(inputs []ValuationInput) []Report {
	start := time.Now()
	reports := workers.Map(s.pool, inputs, s.Calculate)

	s.log.Info().
		Int("scenarios", len(inputs)).
		Int("workers", s.pool.Size()).
		Dur("elapsed", time.Since(start)).
		Msg("Batch valuation completed")

	return reports
}
