package ai

import "fmt"

// RateLimitError means the provider refused the call with a 429. The failover
// loop retries these with backoff instead of moving on immediately.
type RateLimitError struct {
	Provider string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited", e.Provider)
}

// ProviderError is any non-rate-limit provider failure: transport, auth,
// service fault, unusable response body.
type ProviderError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// AllFailedError means no configured provider produced text. PrimaryErr keeps
// the primary provider's last error for diagnostics.
type AllFailedError struct {
	PrimaryErr error
}

func (e *AllFailedError) Error() string {
	if e.PrimaryErr != nil {
		return fmt.Sprintf("all providers failed: %v", e.PrimaryErr)
	}
	return "all providers failed: no provider configured"
}

func (e *AllFailedError) Unwrap() error { return e.PrimaryErr }

// MalformedOutputError means a provider returned text that could not be parsed
// into the expected structure even after normalization.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed provider output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }
