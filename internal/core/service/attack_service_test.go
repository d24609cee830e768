package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passwordSimBackend/internal/adapter/memory"
	"passwordSimBackend/internal/core/advisor"
	"passwordSimBackend/internal/core/domain"
	"passwordSimBackend/internal/pkg/metrics"
	"passwordSimBackend/internal/utils/hashutil"
)

const advisorTestURL = "https://ai.example.test/v1/generate"

func newTestAttackService(adv *advisor.Advisor) (*AttackService, *memory.AttackLog) {
	if adv == nil {
		adv = advisor.New(advisorTestURL, "", time.Second)
	}
	attackLog := memory.NewAttackLog()
	svc := NewAttackService(attackLog, adv, metrics.NewCollector(), nil, 6, DefaultSampleCount)
	return svc, attackLog
}

func mustDigest(t *testing.T, plaintext string) string {
	t.Helper()
	digest, err := hashutil.Hash(plaintext)
	require.NoError(t, err)
	return digest
}

func TestRunAttack_ValidationFailsFast(t *testing.T) {
	svc, attackLog := newTestAttackService(nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     domain.AttackRequest
		wantErr error
	}{
		{
			name: "malformed digest",
			req: domain.AttackRequest{
				TargetDigest: "deadbeef",
				Method:       domain.MethodDictionary,
			},
			wantErr: domain.ErrInvalidDigest,
		},
		{
			name: "suspicious digest refused",
			req: domain.AttackRequest{
				TargetDigest: "$2b$12$abcdefghijklmnopqrstuv",
				Method:       domain.MethodDictionary,
			},
			wantErr: domain.ErrSuspiciousDigest,
		},
		{
			name: "unknown method",
			req: domain.AttackRequest{
				TargetDigest: mustDigest(t, "password"),
				Method:       "RAINBOW",
			},
			wantErr: domain.ErrUnknownMethod,
		},
		{
			name: "brute force over ceiling",
			req: domain.AttackRequest{
				TargetDigest: mustDigest(t, "password"),
				Method:       domain.MethodBruteForce,
				Params:       domain.AttackParams{MaxLength: 7},
			},
			wantErr: domain.ErrLengthLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.RunAttack(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}

	// Rejected requests never reach the log.
	results, err := attackLog.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunAttack_DictionarySuccess(t *testing.T) {
	svc, attackLog := newTestAttackService(nil)

	// letmein is the fifth wordlist entry; the four words before it each
	// consume 1 + 29 mutation attempts.
	result, err := svc.RunAttack(context.Background(), domain.AttackRequest{
		TargetDigest: mustDigest(t, "letmein"),
		Method:       domain.MethodDictionary,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "letmein", result.Password)
	assert.Equal(t, int64(4*30+1), result.Attempts)
	assert.Equal(t, domain.MethodDictionary, result.Method)

	logged, err := attackLog.All(context.Background())
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.True(t, logged[0].Success)
}

func TestRunAttack_DictionaryExhaustion(t *testing.T) {
	svc, _ := newTestAttackService(nil)

	result, err := svc.RunAttack(context.Background(), domain.AttackRequest{
		TargetDigest: mustDigest(t, "zzyzx"),
		Method:       domain.MethodDictionary,
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, result.Password)
	// 15 words, each with 29 mutations: the full generated sequence.
	assert.Equal(t, int64(15*30), result.Attempts)
}

func TestRunAttack_BruteForceOdometerPosition(t *testing.T) {
	svc, _ := newTestAttackService(nil)

	result, err := svc.RunAttack(context.Background(), domain.AttackRequest{
		TargetDigest: mustDigest(t, "ab"),
		Method:       domain.MethodBruteForce,
		Params: domain.AttackParams{
			CharacterSet: domain.CharsetLower,
			MaxLength:    2,
		},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "ab", result.Password)
	// 26 single characters, then aa, ab.
	assert.Equal(t, int64(28), result.Attempts)
}

func TestRunAttack_RuleBasedSuccess(t *testing.T) {
	svc, _ := newTestAttackService(nil)

	result, err := svc.RunAttack(context.Background(), domain.AttackRequest{
		TargetDigest: mustDigest(t, "qwerty"),
		Method:       domain.MethodRuleBased,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "qwerty", result.Password)
}

func TestRunAttack_AIUnavailableDegrades(t *testing.T) {
	svc, attackLog := newTestAttackService(nil)

	result, err := svc.RunAttack(context.Background(), domain.AttackRequest{
		TargetDigest: mustDigest(t, "password"),
		Method:       domain.MethodAI,
	})
	require.NoError(t, err, "an unreachable advisor must not fail the run")

	assert.False(t, result.Success)
	assert.True(t, result.AIUnavailable)
	assert.NotEmpty(t, result.FailureReason)

	logged, err := attackLog.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, logged, 1)
}

func TestRunAttack_AIVerifiesSuggestionsLocally(t *testing.T) {
	adv := advisor.New(advisorTestURL, "test-key", time.Second)
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	defer httpmock.DeactivateAndReset()
	adv.SetHTTPClient(client)

	httpmock.RegisterResponder(http.MethodPost, advisorTestURL,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": `{"candidates": ["wrongguess", "letmein"], "reasoning": "common default"}`},
				}}},
			},
		}))

	svc, _ := newTestAttackService(adv)

	result, err := svc.RunAttack(context.Background(), domain.AttackRequest{
		TargetDigest: mustDigest(t, "letmein"),
		Method:       domain.MethodAI,
		Params:       domain.AttackParams{Context: "router default"},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "letmein", result.Password)
	assert.Equal(t, int64(2), result.Attempts, "the wrong suggestion is verified and rejected first")
	assert.Equal(t, "common default", result.AIRationale)
	assert.False(t, result.AIUnavailable)
}

func TestStatistics(t *testing.T) {
	svc, _ := newTestAttackService(nil)
	ctx := context.Background()

	_, err := svc.RunAttack(ctx, domain.AttackRequest{
		TargetDigest: mustDigest(t, "letmein"),
		Method:       domain.MethodDictionary,
	})
	require.NoError(t, err)

	_, err = svc.RunAttack(ctx, domain.AttackRequest{
		TargetDigest: mustDigest(t, "zzyzx"),
		Method:       domain.MethodDictionary,
	})
	require.NoError(t, err)

	_, err = svc.RunAttack(ctx, domain.AttackRequest{
		TargetDigest: mustDigest(t, "ab"),
		Method:       domain.MethodBruteForce,
		Params:       domain.AttackParams{CharacterSet: "ab", MaxLength: 2},
	})
	require.NoError(t, err)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalRuns)
	assert.Equal(t, int64(2), stats.SuccessfulRuns)
	assert.Equal(t, domain.MethodStats{Total: 2, Successful: 1}, stats.ByMethod[domain.MethodDictionary])
	assert.Equal(t, domain.MethodStats{Total: 1, Successful: 1}, stats.ByMethod[domain.MethodBruteForce])
}

func TestGenerateAndValidateDigest(t *testing.T) {
	svc, _ := newTestAttackService(nil)
	ctx := context.Background()

	digest, err := svc.GenerateDigest(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, mustDigest(t, "hello"), digest)

	info := svc.ValidateDigest(ctx, digest)
	assert.True(t, info.IsValid)
	assert.False(t, info.IsSuspicious)

	info = svc.ValidateDigest(ctx, "$2a$10$abcdefghijklmnopqrstuv")
	assert.True(t, info.IsSuspicious)
}

func TestSamplesPrecomputed(t *testing.T) {
	svc, _ := newTestAttackService(nil)

	samples := svc.Samples(context.Background())
	assert.Len(t, samples, DefaultSampleCount)
	assert.Equal(t, mustDigest(t, "password"), samples[0].Digest)
}
