// Package service provides the domain logic behind the parrot API: a
// greeting producer and a pluggable health check.
package service

import "context"

// HelloWorldMessage is the fixed greeting returned by the hello-world
// endpoint and CLI command.
const HelloWorldMessage = "Hello, world!"

// Core is the capability set the API layer consumes. *Service is the
// canonical implementation; tests may substitute stubs.
type Core interface {
	HelloWorld() string
	CheckHealth(ctx context.Context) error
}

// HealthChecker reports whether the service is able to serve requests.
// A nil error means healthy. Implementations may block on downstream
// dependencies; the HTTP contract does not change based on how the check
// is performed.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// Service is the stateless domain core shared by all API versions.
type Service struct {
	checker HealthChecker
}

// Option configures a Service.
type Option func(*Service)

// WithHealthChecker replaces the default always-healthy check. Used to wire
// downstream dependency probes without touching the HTTP handlers.
func WithHealthChecker(checker HealthChecker) Option {
	return func(s *Service) {
		s.checker = checker
	}
}

// New creates a Service. Without options the service is always healthy.
func New(opts ...Option) *Service {
	s := &Service{
		checker: alwaysHealthy{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HelloWorld returns the fixed greeting message.
func (*Service) HelloWorld() string {
	return HelloWorldMessage
}

// CheckHealth runs the configured health check. A nil error means healthy.
func (s *Service) CheckHealth(ctx context.Context) error {
	return s.checker.CheckHealth(ctx)
}

// alwaysHealthy is the reference health check: no downstream dependencies,
// so the service is healthy by construction.
type alwaysHealthy struct{}

func (alwaysHealthy) CheckHealth(context.Context) error {
	return nil
}
