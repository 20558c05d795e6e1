package pattern

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rohankatakam/gitart/internal/config"
	"golang.org/x/time/rate"
)

// ErrNoProvider is returned when AI suggestions are disabled or no key is configured
var ErrNoProvider = stderrors.New("no AI provider configured")

// Provider names an AI backend
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderNone   Provider = "none"
)

// Suggester turns a free-text description into a grid design
type Suggester interface {
	Suggest(ctx context.Context, prompt string) (*Suggestion, error)
	Provider() Provider
}

const systemPrompt = `You design pixel art for a contribution grid that is 53 weeks wide and 7 days tall.
Answer with JSON only.`

// BuildPrompt wraps the user's description in the grid instructions
func BuildPrompt(description string) string {
	return fmt.Sprintf(`Generate a list of coordinates for a contribution grid (53 weeks wide, 7 days tall) representing: %q.
Return the coordinates as a JSON object {"patternName": string, "points": [{"x": int, "y": int, "level": int}]}
where x is 0-52 (weeks) and y is 0-6 (days, 0 is Sunday). Each point should also have a level from 1-4.`, description)
}

// NewSuggester picks a provider from cfg (GITART_AI_PROVIDER > config > gemini).
// The returned suggester is rate limited to cfg.AI.RequestsPerMinute.
func NewSuggester(ctx context.Context, cfg *config.Config) (Suggester, error) {
	logger := slog.Default().With("component", "pattern")

	var (
		s   Suggester
		err error
	)
	switch Provider(cfg.AI.Provider) {
	case ProviderGemini, "":
		if cfg.AI.GeminiKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY not set", ErrNoProvider)
		}
		s, err = NewGeminiSuggester(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiModel)
	case ProviderOpenAI:
		if cfg.AI.OpenAIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", ErrNoProvider)
		}
		s = NewOpenAISuggester(cfg.AI.OpenAIKey, cfg.AI.OpenAIModel)
	case ProviderNone:
		return nil, ErrNoProvider
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNoProvider, cfg.AI.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("suggester initialized", "provider", s.Provider())
	return WithLimits(s, cfg.AI.RequestsPerMinute, cfg.AI.Timeout), nil
}

// limited throttles and bounds calls to an inner suggester
type limited struct {
	inner   Suggester
	limiter *rate.Limiter
	timeout time.Duration
}

// WithLimits allows at most rpm calls per minute and cancels each call after timeout.
// Non-positive values disable the corresponding limit.
func WithLimits(s Suggester, rpm int, timeout time.Duration) Suggester {
	l := &limited{inner: s, timeout: timeout}
	if rpm > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
	}
	return l
}

func (l *limited) Provider() Provider { return l.inner.Provider() }

func (l *limited) Suggest(ctx context.Context, prompt string) (*Suggestion, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	return l.inner.Suggest(ctx, prompt)
}

// SuggestOrNil calls s and swallows every failure: errors are logged at warn level
// and reported as a nil suggestion
func SuggestOrNil(ctx context.Context, s Suggester, prompt string) *Suggestion {
	logger := slog.Default().With("component", "pattern")
	if s == nil {
		logger.Warn("suggestion skipped", "error", ErrNoProvider)
		return nil
	}

	suggestion, err := s.Suggest(ctx, prompt)
	if err != nil {
		logger.Warn("suggestion failed", "provider", s.Provider(), "error", err)
		return nil
	}
	logger.Debug("suggestion received", "provider", s.Provider(), "pattern", suggestion.Describe())
	return suggestion
}
