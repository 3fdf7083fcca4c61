// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_transcription

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"

	"github.com/rapidaai/meetingbot/pkg/commons"
)

// ErrQuotaExhausted is the fixed sentinel returned when Gemini reports a
// recognized daily-quota error.
var ErrQuotaExhausted = errors.New("transcription: daily quota exhausted")

const (
	maxAttempts       = 5
	initialBackoff    = 30 * time.Second
	rateLimitedSubstr = "429"
	quotaSubstr       = "quota"
)

// LLM wraps a Gemini client with a retry policy: up to five attempts,
// 30s-doubling backoff on rate limiting, immediate abort on a recognized
// quota error.
type LLM struct {
	logger commons.Logger
	client *genai.Client
	model  string
}

// NewLLM constructs an LLM client bound to a Gemini API key and model.
func NewLLM(ctx context.Context, logger commons.Logger, apiKey, model string) (*LLM, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &LLM{logger: logger, client: client, model: model}, nil
}

// GenerateText calls the model with prompt plus an inline audio part,
// retrying on rate limiting with a doubling backoff.
func (l *LLM) GenerateText(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	var result string
	attempt := 0
	policy := backoff.WithMaxRetries(&doublingBackoff{initial: initialBackoff}, uint64(maxAttempts-1))

	err := backoff.Retry(func() error {
		attempt++
		parts := []*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(audio, mimeType),
		}
		resp, err := l.client.Models.GenerateContent(ctx, l.model,
			[]*genai.Content{{Parts: parts, Role: "user"}}, nil)
		if err != nil {
			if isQuotaError(err) {
				return backoff.Permanent(ErrQuotaExhausted)
			}
			if isRateLimited(err) {
				l.logger.Warnf("transcription: gemini rate-limited, attempt %d/%d", attempt, maxAttempts)
				return err
			}
			return backoff.Permanent(err)
		}
		result = resp.Text()
		return nil
	}, policy)

	if err != nil {
		return "", err
	}
	return result, nil
}

// GenerateTextOnly calls the model with a text-only prompt, for callers that
// have nothing to attach (the Report Builder's HTML-synthesis call). It
// retries on the same schedule as GenerateText.
func (l *LLM) GenerateTextOnly(ctx context.Context, prompt string) (string, error) {
	var result string
	attempt := 0
	policy := backoff.WithMaxRetries(&doublingBackoff{initial: initialBackoff}, uint64(maxAttempts-1))

	err := backoff.Retry(func() error {
		attempt++
		parts := []*genai.Part{genai.NewPartFromText(prompt)}
		resp, err := l.client.Models.GenerateContent(ctx, l.model,
			[]*genai.Content{{Parts: parts, Role: "user"}}, nil)
		if err != nil {
			if isQuotaError(err) {
				return backoff.Permanent(ErrQuotaExhausted)
			}
			if isRateLimited(err) {
				l.logger.Warnf("transcription: gemini rate-limited, attempt %d/%d", attempt, maxAttempts)
				return err
			}
			return backoff.Permanent(err)
		}
		result = resp.Text()
		return nil
	}, policy)

	if err != nil {
		return "", err
	}
	return result, nil
}

func isRateLimited(err error) bool {
	return strings.Contains(err.Error(), rateLimitedSubstr)
}

func isQuotaError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), quotaSubstr)
}

// doublingBackoff implements backoff.BackOff with a fixed starting
// interval that doubles on every call. backoff/v4's ExponentialBackOff
// adds jitter and a multiplier this retry policy deliberately avoids —
// quota errors abort outright rather than retrying with randomized delay.
type doublingBackoff struct {
	initial time.Duration
	current time.Duration
}

func (d *doublingBackoff) NextBackOff() time.Duration {
	if d.current == 0 {
		d.current = d.initial
	} else {
		d.current *= 2
	}
	return d.current
}

func (d *doublingBackoff) Reset() {
	d.current = 0
}
