package ai

import "context"

type ResponseFormat string

const (
	FormatText ResponseFormat = "text"
	FormatJSON ResponseFormat = "json"
)

// GenerationRequest is one prompt sent to a provider. Format is advisory:
// providers that support constrained output use it, others ignore it and the
// normalizer cleans up downstream.
type GenerationRequest struct {
	Prompt string
	Format ResponseFormat
}

// Provider is a single generative-text backend. Implementations hold no state
// between calls; one Generate is one network request.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
