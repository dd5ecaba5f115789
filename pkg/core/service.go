package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Service hands out load cycles over a repository.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu      sync.RWMutex
	current *Cycle
	started int
}

// NewService creates a new Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// NewCycle starts a fresh, unshared load cycle.
func (s *Service) NewCycle() *Cycle {
	s.mu.Lock()
	s.started++
	s.mu.Unlock()
	return NewCycle(s.repo, s.logger)
}

// Current returns the shared cycle, starting one if none is active.
// It stays in use until Invalidate is called.
func (s *Service) Current() *Cycle {
	s.mu.RLock()
	c := s.current
	s.mu.RUnlock()
	if c != nil {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		s.current = NewCycle(s.repo, s.logger)
		s.started++
	}
	return s.current
}

// Invalidate discards the shared cycle. Readers holding the old one keep a
// consistent snapshot; the next call to Current reads the repository again.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// CreatePost scaffolds a new post if the repository supports it.
func (s *Service) CreatePost(ctx context.Context, slug string, meta Metadata, body string) error {
	if !ValidSlug(slug) {
		return ErrInvalidSlug
	}
	c, ok := s.repo.(Creatable)
	if !ok {
		return errors.New("repository does not support creating posts")
	}
	if err := c.Create(ctx, slug, meta, body); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}
