package service

import (
	"context"
	"time"

	"github.com/duke-git/lancet/v2/slice"

	"passwordSimBackend/internal/core/advisor"
	"passwordSimBackend/internal/core/domain"
	"passwordSimBackend/internal/core/generator"
	"passwordSimBackend/internal/pkg/metrics"
	"passwordSimBackend/internal/port"
	"passwordSimBackend/internal/shared"
	"passwordSimBackend/internal/utils/hashutil"
	"passwordSimBackend/internal/utils/random"
)

const (
	// MaxAttempts caps one attack run. Together with the brute-force length
	// ceiling this is the only bound on candidate-space size.
	MaxAttempts = 10_000_000

	// DefaultSampleCount is how many synthetic targets to precompute.
	DefaultSampleCount = 20

	attemptsReportEvery = 1000
)

// AttackService validates attack requests, drives the selected candidate
// generator (or the AI advisor) and verifies every candidate against the
// target digest. Completed runs land in the append-only attack log.
type AttackService struct {
	attackLog port.AttackLog
	advisor   *advisor.Advisor
	collector *metrics.Collector
	reporter  *metrics.Reporter
	ceiling   int
	samples   []domain.SampleDigest
}

func NewAttackService(
	attackLog port.AttackLog,
	adv *advisor.Advisor,
	collector *metrics.Collector,
	reporter *metrics.Reporter,
	ceiling int,
	sampleCount int,
) *AttackService {
	if ceiling <= 0 {
		ceiling = generator.DefaultCeiling
	}
	if sampleCount <= 0 {
		sampleCount = DefaultSampleCount
	}

	return &AttackService{
		attackLog: attackLog,
		advisor:   adv,
		collector: collector,
		reporter:  reporter,
		ceiling:   ceiling,
		samples:   hashutil.SampleData(sampleCount),
	}
}

func (s *AttackService) RunAttack(ctx context.Context, req domain.AttackRequest) (*domain.AttackResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	result := &domain.AttackResult{
		ID:        random.UUID(),
		Method:    req.Method,
		Timestamp: time.Now(),
	}

	s.collector.StartRun(result.ID)
	started := time.Now()

	var err error
	if req.Method == domain.MethodAI {
		err = s.runAdvisor(ctx, req, result)
	} else {
		err = s.runGenerator(ctx, req, result)
	}

	s.collector.StopRun(result.ID)
	result.Elapsed = time.Since(started)
	result.Resources = s.collector.Snapshot(result.ID)

	if err != nil {
		return nil, err
	}

	if logErr := s.attackLog.Append(ctx, *result); logErr != nil {
		shared.Logger.Error("failed to append attack result", "error", logErr)
	}
	if s.reporter != nil {
		s.reporter.Record("attack", result)
	}

	shared.Logger.Info("attack run finished",
		"method", result.Method,
		"success", result.Success,
		"attempts", result.Attempts,
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// validate fails fast before any candidate generation starts.
func (s *AttackService) validate(req domain.AttackRequest) error {
	if hashutil.IsSuspicious(req.TargetDigest) {
		return domain.ErrSuspiciousDigest
	}
	if !hashutil.IsValidFormat(req.TargetDigest) {
		return domain.ErrInvalidDigest
	}
	if !slice.Contain(domain.AttackMethods, req.Method) {
		return domain.ErrUnknownMethod
	}
	if req.Method == domain.MethodBruteForce && req.Params.MaxLength > s.ceiling {
		return domain.ErrLengthLimit
	}
	return nil
}

func (s *AttackService) runGenerator(ctx context.Context, req domain.AttackRequest, result *domain.AttackResult) error {
	gen := s.newGenerator(req.Method)
	gen.SetParams(req.Params)
	defer gen.Stop()

	candidates, errs := gen.Start(ctx)

	for {
		select {
		case candidate, ok := <-candidates:
			if !ok {
				return nil
			}

			result.Attempts++
			if result.Attempts%attemptsReportEvery == 0 {
				s.collector.RecordAttempts(result.ID, result.Attempts)
			}
			if result.Attempts > MaxAttempts {
				result.FailureReason = "attempt ceiling reached"
				return nil
			}

			match, err := hashutil.Verify(candidate, req.TargetDigest)
			if err != nil {
				continue
			}
			if match {
				result.Success = true
				result.Password = candidate
				s.collector.RecordAttempts(result.ID, result.Attempts)
				return nil
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return err
			}

		case <-ctx.Done():
			result.FailureReason = ctx.Err().Error()
			return nil
		}
	}
}

// runAdvisor verifies every externally suggested candidate locally; the
// advisor's claims are never trusted blindly. An unreachable advisor degrades
// to a reported failure, never a fault.
func (s *AttackService) runAdvisor(ctx context.Context, req domain.AttackRequest, result *domain.AttackResult) error {
	suggestion, err := s.advisor.Suggest(ctx, req.TargetDigest, req.Params.Context)
	if err != nil {
		shared.Logger.Warn("AI advisor unavailable", "error", err)
		result.AIUnavailable = true
		result.FailureReason = err.Error()
		return nil
	}

	result.AIRationale = suggestion.Rationale
	for _, candidate := range suggestion.Candidates {
		result.Attempts++
		match, verr := hashutil.Verify(candidate, req.TargetDigest)
		if verr != nil {
			continue
		}
		if match {
			result.Success = true
			result.Password = candidate
			break
		}
	}
	s.collector.RecordAttempts(result.ID, result.Attempts)
	return nil
}

func (s *AttackService) newGenerator(method domain.AttackMethod) generator.Generator {
	switch method {
	case domain.MethodDictionary:
		return generator.NewDictionary()
	case domain.MethodRuleBased:
		return generator.NewRuleBased()
	default:
		return generator.NewBruteForce(s.ceiling)
	}
}

func (s *AttackService) GenerateDigest(_ context.Context, plaintext string) (string, error) {
	return hashutil.GenerateSynthetic(plaintext)
}

func (s *AttackService) ValidateDigest(_ context.Context, digest string) domain.DigestInfo {
	return hashutil.Info(digest)
}

func (s *AttackService) Samples(_ context.Context) []domain.SampleDigest {
	return s.samples
}

// Statistics recomputes per-method totals from the attack log.
func (s *AttackService) Statistics(ctx context.Context) (*domain.AttackStatistics, error) {
	results, err := s.attackLog.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.AttackStatistics{
		ByMethod: make(map[domain.AttackMethod]domain.MethodStats),
	}
	for _, result := range results {
		stats.TotalRuns++
		stats.TotalAttempts += result.Attempts

		methodStats := stats.ByMethod[result.Method]
		methodStats.Total++
		if result.Success {
			stats.SuccessfulRuns++
			methodStats.Successful++
		}
		stats.ByMethod[result.Method] = methodStats
	}
	return stats, nil
}
