package model

import (
	"context"
	"fmt"
	"time"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
	"github.com/noorulain276775/pizza-delivery-app/internal/ports"
)

// Loader performs the one-shot startup probe of the inference server. Model
// servers warm up slowly, so readiness is polled until LoadTimeout elapses;
// a server that never answers leaves the process in fallback mode for its
// whole lifetime.
type Loader struct {
	client       *Client
	loadTimeout  time.Duration
	pollInterval time.Duration
}

func NewLoader(client *Client, loadTimeout time.Duration) *Loader {
	return &Loader{
		client:       client,
		loadTimeout:  loadTimeout,
		pollInterval: 2 * time.Second,
	}
}

func (l *Loader) Load(ctx context.Context) (ports.Generator, error) {
	deadline := time.Now().Add(l.loadTimeout)
	var lastErr error

	for {
		if err := l.client.Healthy(ctx); err == nil {
			return l.client, nil
		} else {
			lastErr = err
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: load deadline exceeded: %v", domain.ErrModelUnavailable, lastErr)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, ctx.Err())
		case <-time.After(l.pollInterval):
		}
	}
}
