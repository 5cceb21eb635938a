package application

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
	"github.com/noorulain276775/pizza-delivery-app/internal/ports"
)

// ModelState is the published state of the generative capability.
type ModelState int32

const (
	// StateUninitialized holds from process start until background loading
	// finishes. Requests route to fallback and never block on the load.
	StateUninitialized ModelState = iota
	StateReady
	// StateDegraded is terminal for the process lifetime: only load-time
	// failure puts the strategy here, never a single call failure.
	StateDegraded
)

func (s ModelState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	default:
		return "uninitialized"
	}
}

type responder interface {
	respond(ctx context.Context, userMessage, convContext string) (string, error)
}

// generativeStrategy calls the model under a per-call timeout and enhances the
// result with domain knowledge.
type generativeStrategy struct {
	generator ports.Generator
	timeout   time.Duration
}

func (g *generativeStrategy) respond(ctx context.Context, userMessage, convContext string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	text, err := g.generator.Generate(callCtx, convContext)
	if err != nil {
		return "", err
	}
	return domain.Enhance(text, userMessage), nil
}

// fallbackStrategy is the deterministic rule-based backstop. It cannot fail.
type fallbackStrategy struct{}

func (fallbackStrategy) respond(_ context.Context, userMessage, _ string) (string, error) {
	return domain.Fallback(userMessage), nil
}

// ResponseStrategy selects between generative completion and the rule-based
// fallback by explicit state, never by runtime type inspection. The chat
// endpoint always gets a textual response out of Respond.
type ResponseStrategy struct {
	state      atomic.Int32
	generative atomic.Pointer[generativeStrategy]
	fallback   fallbackStrategy
	timeout    time.Duration
	logger     *slog.Logger
}

func NewResponseStrategy(generationTimeout time.Duration, logger *slog.Logger) *ResponseStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseStrategy{
		timeout: generationTimeout,
		logger:  logger.With("module", "chat", "layer", "application"),
	}
}

// StartLoading kicks off the one-shot asynchronous initialization. The state
// transition is published atomically when the load completes; request handling
// observes the current state and is never blocked by the goroutine.
func (s *ResponseStrategy) StartLoading(ctx context.Context, loader ports.GeneratorLoader) {
	go func() {
		generator, err := loader.Load(ctx)
		if err != nil {
			s.state.Store(int32(StateDegraded))
			s.logger.WarnContext(ctx, "model load failed, running degraded",
				"operation", "model_load", "outcome", "failure", "error", err.Error())
			return
		}
		s.generative.Store(&generativeStrategy{generator: generator, timeout: s.timeout})
		s.state.Store(int32(StateReady))
		s.logger.InfoContext(ctx, "model loaded",
			"operation", "model_load", "outcome", "success")
	}()
}

func (s *ResponseStrategy) State() ModelState {
	return ModelState(s.state.Load())
}

// Respond produces a reply for the user message given the bounded context.
// In Ready, a per-call generation failure falls back for this call only; it
// does not flip the state, separating transient inference errors from the
// permanent unavailability that load-time failure signals.
func (s *ResponseStrategy) Respond(ctx context.Context, userMessage, convContext string) string {
	if s.State() == StateReady {
		if gen := s.generative.Load(); gen != nil {
			text, err := gen.respond(ctx, userMessage, convContext)
			if err == nil {
				return text
			}
			s.logger.WarnContext(ctx, "generation failed, using fallback",
				"operation", "generate", "outcome", "failure", "error", err.Error())
		}
	}
	text, _ := s.fallback.respond(ctx, userMessage, convContext)
	return text
}
