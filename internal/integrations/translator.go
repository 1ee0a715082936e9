package integrations

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
)

// Translator translates text between languages. Declared here so the
// rate-limited decorator can wrap any implementation.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// LogTranslator produces deterministic placeholder translations and logs each
// request. The output embeds the target language so stored translations are
// distinguishable per language.
type LogTranslator struct {
	logger *slog.Logger
}

// NewLogTranslator creates a new LogTranslator.
func NewLogTranslator(logger *slog.Logger) *LogTranslator {
	return &LogTranslator{logger: logger}
}

// Translate returns a placeholder translation of text into targetLang.
func (t *LogTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if t.logger != nil {
		t.logger.InfoContext(ctx, "translating text",
			slog.String("source_lang", sourceLang),
			slog.String("target_lang", targetLang),
			slog.Int("length", len(text)),
		)
	}
	return fmt.Sprintf("[%s] %s", targetLang, text), nil
}

// RateLimitedTranslator throttles an inner Translator. Translation providers
// meter by request, so the saga's fan-out over target languages goes through
// a shared limiter.
type RateLimitedTranslator struct {
	inner   Translator
	limiter *rate.Limiter
}

// NewRateLimitedTranslator wraps inner with a limiter allowing requestsPerSec
// sustained requests and bursts of up to burst.
func NewRateLimitedTranslator(inner Translator, requestsPerSec float64, burst int) *RateLimitedTranslator {
	return &RateLimitedTranslator{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), burst),
	}
}

// Translate waits for limiter capacity, then delegates to the inner translator.
func (t *RateLimitedTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translator rate limit wait: %w", err)
	}
	return t.inner.Translate(ctx, text, sourceLang, targetLang)
}
