package ports

import "context"

// Generator is the opaque generative capability. Generate turns a bounded
// conversation context into a reply and fails with domain.ErrModelUnavailable
// (possibly wrapped) when the model cannot serve the call.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorLoader performs the one-shot asynchronous initialization of the
// generative capability. Load blocks until the capability is usable or
// definitively unavailable; it is invoked once, on a background goroutine,
// and must never run on a request path.
type GeneratorLoader interface {
	Load(ctx context.Context) (Generator, error)
}
