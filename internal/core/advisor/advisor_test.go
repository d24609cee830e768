package advisor

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passwordSimBackend/internal/core/domain"
)

const testURL = "https://ai.example.test/v1/generate"

func newTestAdvisor(t *testing.T) *Advisor {
	t.Helper()

	a := New(testURL, "test-key", 5*time.Second)
	httpmock.ActivateNonDefault(a.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return a
}

func providerResponse(text string) httpmock.Responder {
	return httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
}

func TestSuggest_ParsesStrictJSON(t *testing.T) {
	a := newTestAdvisor(t)
	httpmock.RegisterResponder(http.MethodPost, testURL,
		providerResponse(`{"candidates": ["summer2024", "fluffy123"], "reasoning": "pet name with year"}`))

	suggestion, err := a.Suggest(context.Background(), "deadbeef", "owner has a cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"summer2024", "fluffy123"}, suggestion.Candidates)
	assert.Equal(t, "pet name with year", suggestion.Rationale)
}

func TestSuggest_StripsCodeFences(t *testing.T) {
	a := newTestAdvisor(t)
	httpmock.RegisterResponder(http.MethodPost, testURL,
		providerResponse("```json\n{\"candidates\": [\"hunter2\"], \"reasoning\": \"classic\"}\n```"))

	suggestion, err := a.Suggest(context.Background(), "deadbeef", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"hunter2"}, suggestion.Candidates)
}

func TestSuggest_FallsBackToLines(t *testing.T) {
	a := newTestAdvisor(t)
	httpmock.RegisterResponder(http.MethodPost, testURL,
		providerResponse("password1\nqwerty99\n\nletmein!\n"))

	suggestion, err := a.Suggest(context.Background(), "deadbeef", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"password1", "qwerty99", "letmein!"}, suggestion.Candidates)
	assert.Empty(t, suggestion.Rationale)
}

func TestSuggest_CapsCandidates(t *testing.T) {
	a := newTestAdvisor(t)

	text := ""
	for i := 0; i < 30; i++ {
		text += "guess\n"
	}
	httpmock.RegisterResponder(http.MethodPost, testURL, providerResponse(text))

	suggestion, err := a.Suggest(context.Background(), "deadbeef", "")
	require.NoError(t, err)
	assert.Len(t, suggestion.Candidates, MaxCandidates)
}

func TestSuggest_UnavailableOnProviderError(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{
			name:      "server error",
			responder: httpmock.NewStringResponder(http.StatusInternalServerError, "boom"),
		},
		{
			name:      "auth failure",
			responder: httpmock.NewStringResponder(http.StatusUnauthorized, "bad key"),
		},
		{
			name:      "malformed body",
			responder: httpmock.NewStringResponder(http.StatusOK, "not json at all"),
		},
		{
			name:      "empty response",
			responder: httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"candidates": []any{}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdvisor(t)
			httpmock.RegisterResponder(http.MethodPost, testURL, tt.responder)

			suggestion, err := a.Suggest(context.Background(), "deadbeef", "")
			assert.ErrorIs(t, err, domain.ErrAIUnavailable)
			assert.Empty(t, suggestion.Candidates)
		})
	}
}

func TestSuggest_UnconfiguredKey(t *testing.T) {
	a := New(testURL, "", time.Second)

	assert.False(t, a.Configured())

	_, err := a.Suggest(context.Background(), "deadbeef", "")
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
}

func TestSuggest_SendsKeyAsQueryParam(t *testing.T) {
	a := newTestAdvisor(t)

	var gotKey string
	httpmock.RegisterResponder(http.MethodPost, testURL,
		func(req *http.Request) (*http.Response, error) {
			gotKey = req.URL.Query().Get("key")
			return providerResponse(`{"candidates": ["x1"], "reasoning": ""}`)(req)
		})

	_, err := a.Suggest(context.Background(), "deadbeef", "")
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
}
