package ai

import (
	"context"
	"errors"
	"log"
	"time"
)

const (
	maxPrimaryAttempts = 3
	defaultBaseDelay   = time.Second
)

// Failover produces text from a prioritized provider list. The first provider
// gets bounded rate-limit retries; every later one is tried exactly once, on
// the theory that a fallback is cheaper to skip past than to hammer. Providers
// are tried strictly in order, never concurrently, and the first success wins.
type Failover struct {
	providers []Provider
	baseDelay time.Duration
	sleep     func(time.Duration)
}

func NewFailover(providers ...Provider) *Failover {
	return &Failover{
		providers: providers,
		baseDelay: defaultBaseDelay,
		sleep:     time.Sleep,
	}
}

func (f *Failover) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if len(f.providers) == 0 {
		return "", &AllFailedError{}
	}

	primary := f.providers[0]
	var primaryErr error

	for attempt := 1; attempt <= maxPrimaryAttempts; attempt++ {
		text, err := primary.Generate(ctx, req)
		if err == nil {
			return text, nil
		}
		primaryErr = err

		var rl *RateLimitError
		if errors.As(err, &rl) && attempt < maxPrimaryAttempts {
			log.Printf("[ai] %s rate limited, retrying (%d/%d)", primary.Name(), attempt, maxPrimaryAttempts)
			f.sleep(time.Duration(attempt) * f.baseDelay)
			continue
		}
		// Non-transient failure, or retries exhausted: move on.
		break
	}
	log.Printf("[ai] %s failed: %v", primary.Name(), primaryErr)

	for _, p := range f.providers[1:] {
		text, err := p.Generate(ctx, req)
		if err == nil {
			log.Printf("[ai] fell back to %s", p.Name())
			return text, nil
		}
		log.Printf("[ai] fallback %s failed: %v", p.Name(), err)
	}

	return "", &AllFailedError{PrimaryErr: primaryErr}
}
