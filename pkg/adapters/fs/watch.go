package fs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/folio/pkg/core"
)

// Watch emits an event for every content file that is created, modified or
// removed in the repository directory. Bursts on the same file are coalesced
// into a single event carrying the latest type, except that a write
// following a create is still reported as a create. The channel is closed once
// ctx is done.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.Path); err != nil {
		_ = watcher.Close()
		return nil, &core.DirectoryReadError{Path: r.Path, Err: err}
	}

	events := make(chan core.Event)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		return r.watchLoop(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		if r.config.Logger != nil {
			r.config.Logger.Error("watcher stopped", "error", err)
		}
	}))

	return events, nil
}

func (r *Repository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- core.Event) error {
	pending := make(map[string]core.Event)
	timer := time.NewTimer(r.config.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	flush := func() bool {
		for id, e := range pending {
			select {
			case out <- e:
			case <-ctx.Done():
				return false
			}
			delete(pending, id)
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			if r.config.Logger != nil {
				r.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			}

			name := filepath.Base(event.Name)
			if !r.recognized(name) {
				continue
			}
			eType := mapEventType(event)
			if eType == "" {
				continue
			}
			id := SlugFromFile(name)
			if prev, ok := pending[id]; ok && prev.Type == core.EventCreate && eType == core.EventModify {
				eType = core.EventCreate
			}
			pending[id] = core.Event{Type: eType, ID: id, Timestamp: time.Now().Unix()}
			timer.Reset(r.config.Debounce)

		case <-timer.C:
			if !flush() {
				return nil
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			if r.config.Logger != nil {
				r.config.Logger.Error("fsnotify error", "error", wErr)
			}
		}
	}
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}
