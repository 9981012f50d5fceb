// Package llm wraps the Gemini API behind a single Generate call and tags
// its failures with apperror kinds.
package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"commendai/internal/apperror"
	"commendai/internal/logger"

	"google.golang.org/genai"
)

const op = "llm.Generate"

// contentGenerator is the part of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models      contentGenerator
	model       string
	timeout     time.Duration
	temperature float32
}

// NewGemini creates a generator for model. An empty apiKey yields a
// generator whose calls fail with model_unavailable, so the server can
// still start and report the missing key.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	g := &Gemini{model: model, timeout: timeout, temperature: 0.9}
	if apiKey == "" {
		logger.FromContext(ctx).Warn("GEMINI_API_KEY not set, comment generation disabled")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	g.models = client.Models
	return g, nil
}

// Generate makes exactly one model call. There is no retry.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.models == nil {
		return "", apperror.Newf(apperror.ModelUnavailable, op, "no API key configured")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", classify(err)
	}

	text := ""
	if result != nil {
		text = strings.TrimSpace(result.Text())
	}
	if text == "" {
		reason := "empty response"
		if result != nil && result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
			reason = "prompt blocked: " + string(result.PromptFeedback.BlockReason)
		}
		return "", apperror.Newf(apperror.ModelGeneric, op, "%s", reason)
	}

	logger.FromContext(ctx).Debug("Model call finished", "model", g.model, "duration", time.Since(start), "chars", len(text))
	return text, nil
}

// classify maps a Gemini SDK or transport error onto a model kind.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.New(apperror.ModelNetwork, op, err)
	}
	if errors.Is(err, context.Canceled) {
		return apperror.New(apperror.ModelGeneric, op, err)
	}

	if apiErr, ok := asAPIError(err); ok {
		switch {
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden,
			apiErr.Status == "PERMISSION_DENIED" || apiErr.Status == "UNAUTHENTICATED",
			hasDetailReason(apiErr, "API_KEY_INVALID"):
			return apperror.New(apperror.ModelUnavailable, op, err)
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
			return apperror.New(apperror.ModelQuotaExceeded, op, err)
		case apiErr.Code == http.StatusGatewayTimeout || apiErr.Status == "DEADLINE_EXCEEDED":
			return apperror.New(apperror.ModelNetwork, op, err)
		}
		return apperror.New(apperror.ModelGeneric, op, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperror.New(apperror.ModelNetwork, op, err)
	}

	return apperror.New(apperror.ModelGeneric, op, err)
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

func hasDetailReason(apiErr genai.APIError, reason string) bool {
	for _, d := range apiErr.Details {
		if r, ok := d["reason"].(string); ok && r == reason {
			return true
		}
	}
	return false
}
