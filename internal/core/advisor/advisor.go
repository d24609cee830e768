package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"passwordSimBackend/internal/core/domain"
	"passwordSimBackend/internal/shared"
)

// MaxCandidates caps how many external suggestions one run will verify.
const MaxCandidates = 15

var fenceRegex = regexp.MustCompile("(?s)(?:~~~|```)\\s*(?:json)?\\s*(.*?)\\s*(?:~~~|```)")

// Suggestion is the parsed output of the external guesser. Candidates are
// unverified; the orchestrator checks each one against the target digest.
type Suggestion struct {
	Candidates []string `json:"candidates"`
	Rationale  string   `json:"reasoning"`
}

// Advisor is a thin adapter over an external generative endpoint. Every call
// is bounded by the client timeout; all failures degrade to
// domain.ErrAIUnavailable.
type Advisor struct {
	client *http.Client
	apiURL string
	apiKey string
}

func New(apiURL, apiKey string, timeout time.Duration) *Advisor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Advisor{
		client: &http.Client{Timeout: timeout},
		apiURL: apiURL,
		apiKey: apiKey,
	}
}

// SetHTTPClient replaces the client used for provider calls. The configured
// timeout is kept unless the replacement has its own.
func (a *Advisor) SetHTTPClient(client *http.Client) {
	if client.Timeout == 0 {
		client.Timeout = a.client.Timeout
	}
	a.client = client
}

// Configured reports whether the external capability is usable at all.
func (a *Advisor) Configured() bool {
	return a.apiKey != "" && a.apiURL != ""
}

// Suggest asks the external capability for candidate plaintexts plus a
// rationale. The response is untrusted free text and parsed defensively.
func (a *Advisor) Suggest(ctx context.Context, targetDigest, hint string) (Suggestion, error) {
	if !a.Configured() {
		return Suggestion{}, fmt.Errorf("%w: no API key configured", domain.ErrAIUnavailable)
	}

	text, err := a.generate(ctx, buildPrompt(targetDigest, hint))
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}

	suggestion := parseSuggestion(text)
	if len(suggestion.Candidates) == 0 {
		return Suggestion{}, fmt.Errorf("%w: response contained no candidates", domain.ErrAIUnavailable)
	}

	shared.Logger.Debug("advisor returned candidates", "count", len(suggestion.Candidates))
	return suggestion, nil
}

func buildPrompt(targetDigest, hint string) string {
	if hint == "" {
		hint = "no specific context provided"
	}
	return fmt.Sprintf(`You are assisting an educational password-guessing simulation on a synthetic hash.

Hash: %s
Context: %s

Propose 10-15 likely password candidates for this context and explain your reasoning briefly.
Respond with strict JSON only:
{"candidates": ["guess1", "guess2"], "reasoning": "one short paragraph"}`, targetDigest, hint)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (a *Advisor) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	endpoint := a.apiURL
	if u, perr := url.Parse(endpoint); perr == nil {
		q := u.Query()
		q.Set("key", a.apiKey)
		u.RawQuery = q.Encode()
		endpoint = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("malformed provider response: %v", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty provider response")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// parseSuggestion extracts candidates from untrusted model output: fenced or
// bare JSON first, then a plain line-per-candidate fallback.
func parseSuggestion(text string) Suggestion {
	raw := strings.TrimSpace(text)
	if m := fenceRegex.FindStringSubmatch(raw); len(m) == 2 {
		raw = strings.TrimSpace(m[1])
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(raw), &suggestion); err == nil {
		suggestion.Candidates = sanitize(suggestion.Candidates)
		return suggestion
	}

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Trim(strings.TrimSpace(line), `"',-`)
		if line != "" && !strings.ContainsAny(line, "{}[]:") {
			lines = append(lines, line)
		}
	}
	return Suggestion{Candidates: sanitize(lines)}
}

func sanitize(candidates []string) []string {
	cleaned := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		cleaned = append(cleaned, c)
		if len(cleaned) == MaxCandidates {
			break
		}
	}
	return cleaned
}
