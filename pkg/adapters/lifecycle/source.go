// Package lifecycle exposes content change events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/folio/pkg/core"
)

type contentSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	logger *slog.Logger
}

// NewSource creates a lifecycle.Source that emits content change events.
// A nil logger discards output.
func NewSource(events <-chan core.Event, logger *slog.Logger) lifecycle.Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &contentSource{
		events: events,
		out:    make(chan lifecycle.Event),
		logger: logger,
	}
}

func (s *contentSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until the input closes or ctx is done, then closes
// the output channel. A delete repeated for the slug that was just deleted
// is dropped: the post is already gone from the next cycle.
func (s *contentSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		var last core.Event
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if redundant(last, e) {
					s.logger.Debug("dropping repeated delete", "slug", e.ID)
					continue
				}
				last = e
				s.logger.Debug("content event", "type", string(e.Type), "slug", e.ID)
				// core.Event satisfies lifecycle.Event through String.
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

func redundant(last, e core.Event) bool {
	return e.Type == core.EventDelete && last.Type == core.EventDelete && last.ID == e.ID
}
