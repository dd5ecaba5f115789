package platform

import (
	"github.com/aretw0/folio/pkg/core"
)

// New creates a folio service over the content at uri.
//
//	svc, err := folio.New("app/blog/posts", folio.WithExtensions(".mdx", ".md"))
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	// Options are parsed again here to get the logger for wiring.
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(repo, o.logger), nil
}
