package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pathoai-backend/internal/llm"
	"pathoai-backend/internal/shared/metrics"
	"pathoai-backend/internal/shared/telemetry"
	"pathoai-backend/internal/usagelimits"
)

const dateLayout = "2006-01-02"

// AnalyzeRequest carries a validated slide submission.
type AnalyzeRequest struct {
	ImageBase64     string
	Organ           string
	ClinicalContext string
	Model           string
}

// Service runs slide analyses, gated by the per-day usage limits.
type Service struct {
	Repo     Repo
	Usage    *usagelimits.Service
	JRClient llm.Client
	SRClient llm.Client
}

// Analyze checks today's quota for the requested tier, runs the model,
// stores the result, and consumes one quota unit.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (Analysis, error) {
	today := time.Now().UTC().Format(dateLayout)

	if err := s.Usage.CheckQuota(ctx, today, req.Model); err != nil {
		if errors.Is(err, usagelimits.ErrLimitReached) {
			metrics.IncQuotaRejected()
			return Analysis{}, err
		}
		return Analysis{}, fmt.Errorf("usage limit check: %w", err)
	}

	client, err := s.clientFor(req.Model)
	if err != nil {
		return Analysis{}, err
	}

	metrics.IncAnalysisStarted()
	started := time.Now()

	result, err := client.AnalyzeSlide(ctx, llm.Input{
		ImageBase64:     req.ImageBase64,
		Organ:           req.Organ,
		ClinicalContext: req.ClinicalContext,
	})
	if err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, fmt.Errorf("llm analysis: %w", err)
	}

	analysis := Analysis{
		SlideImage:           req.ImageBase64,
		Organ:                req.Organ,
		ClinicalContext:      req.ClinicalContext,
		Model:                req.Model,
		Observation:          result.Observation,
		PreliminaryDiagnosis: result.PreliminaryDiagnosis,
		ConfidenceLevel:      result.ConfidenceLevel,
		Disclaimer:           result.Disclaimer,
		CreatedAt:            time.Now().UTC(),
	}

	id, err := s.Repo.Create(ctx, analysis)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, fmt.Errorf("store analysis: %w", err)
	}
	analysis.ID = id

	// The analysis already succeeded; a failed counter bump is logged,
	// not surfaced to the caller.
	if err := s.Usage.ConsumeUnit(ctx, today, req.Model); err != nil {
		telemetry.Error("usage.increment_failed", map[string]any{
			"date":  today,
			"model": req.Model,
			"error": err.Error(),
		})
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	return analysis, nil
}

// History returns every stored analysis, storage order.
func (s *Service) History(ctx context.Context) ([]Analysis, error) {
	return s.Repo.List(ctx)
}

// SubmitFeedback attaches a reviewer verdict to an analysis.
func (s *Service) SubmitFeedback(ctx context.Context, analysisID string, fb Feedback) error {
	return s.Repo.SetFeedback(ctx, analysisID, fb)
}

func (s *Service) clientFor(tier string) (llm.Client, error) {
	switch tier {
	case usagelimits.TierJR:
		if s.JRClient == nil {
			return nil, fmt.Errorf("no client configured for tier %s", tier)
		}
		return s.JRClient, nil
	case usagelimits.TierSR:
		if s.SRClient == nil {
			return nil, fmt.Errorf("no client configured for tier %s", tier)
		}
		return s.SRClient, nil
	default:
		return nil, fmt.Errorf("%w: %q", usagelimits.ErrUnknownTier, tier)
	}
}
