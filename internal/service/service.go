package service

import (
	"time"

	"config-splitter/internal/catalog"
	"config-splitter/internal/gen"
	"config-splitter/internal/plan"
	"config-splitter/internal/schema"
)

// maxConcurrentReads bounds parallel input reads.
const maxConcurrentReads = 8

// Service runs split and merge requests. It holds no per-request state and
// is safe for concurrent use.
type Service struct {
	catalog *catalog.Catalog
	schema  *schema.Registry
	naming  gen.Naming
	policy  plan.Policy
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNaming sets the file naming convention.
func WithNaming(n gen.Naming) Option {
	return func(s *Service) {
		s.naming = n
	}
}

// WithPolicy sets the auto-split policy used without a selection.
func WithPolicy(p plan.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithClock sets the clock used for backup names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithCatalog replaces the builtin catalog and schema registry.
func WithCatalog(c *catalog.Catalog, reg *schema.Registry) Option {
	return func(s *Service) {
		s.catalog = c
		s.schema = reg
	}
}

// New creates a Service over the builtin catalog.
func New(opts ...Option) *Service {
	s := &Service{
		catalog: catalog.Builtin(),
		schema:  schema.Builtin(),
		naming:  gen.DefaultNaming(),
		policy:  plan.PolicyKeepFirst,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
