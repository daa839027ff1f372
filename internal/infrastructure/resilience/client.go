package resilience

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/ports"
)

// Transport performs a single network completion call against one backend.
// Failures are reported as *domain.ProviderError so this layer can classify
// them without knowing the vendor.
type Transport interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client wraps a Transport with the retry, backoff, timeout, and
// circuit-breaking policy for one provider. It implements ports.Provider.
type Client struct {
	transport Transport
	breaker   *Breaker
	logger    ports.Logger

	maxRetries int
	backoff    time.Duration
	timeout    time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient builds a resilient client for one provider.
func NewClient(transport Transport, settings domain.ProviderSettings, breaker *Breaker, logger ports.Logger) *Client {
	return &Client{
		transport:  transport,
		breaker:    breaker,
		logger:     logger,
		maxRetries: settings.MaxRetries,
		backoff:    settings.Backoff(),
		timeout:    settings.Timeout(),
		sleep:      sleepCtx,
	}
}

func (c *Client) Name() string { return c.transport.Name() }

// Available reports whether the provider's circuit permits a call.
func (c *Client) Available() bool { return c.breaker.Allow() }

// Complete attempts the transport up to the configured retry budget.
// Transient failures (transport error, timeout, 5xx) are retried after a
// linear backoff (backoff x attempt number) and count toward opening the
// circuit; a circuit that opens mid-loop aborts the remaining attempts.
// Client errors and malformed bodies are definitive for this call and never
// touch the breaker. No lock is held across the network call or the sleep.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if !c.breaker.Allow() {
			return "", domain.ErrCircuitOpen
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		text, err := c.transport.Complete(attemptCtx, prompt)
		cancel()

		if err == nil {
			text = strings.TrimSpace(text)
			if text == "" {
				// Empty body counts as malformed: definitive, uncounted.
				return "", domain.ErrProviderUnavailable
			}
			c.breaker.RecordSuccess()
			return text, nil
		}

		if ctx.Err() != nil {
			// Caller cancellation, not a provider-health signal.
			return "", ctx.Err()
		}

		var perr *domain.ProviderError
		if errors.As(err, &perr) && perr.Retriable() {
			c.breaker.RecordFailure()
			c.logger.Warn("provider attempt failed", map[string]interface{}{
				"provider": c.transport.Name(),
				"attempt":  attempt,
				"error":    err.Error(),
			})
			if !c.breaker.Allow() {
				c.logger.Warn("circuit opened", map[string]interface{}{
					"provider": c.transport.Name(),
					"failures": c.breaker.Failures(),
				})
				return "", domain.ErrProviderUnavailable
			}
			if attempt < c.maxRetries {
				if err := c.sleep(ctx, c.backoff*time.Duration(attempt)); err != nil {
					return "", err
				}
			}
			continue
		}

		// 4xx or malformed payload: no retry, no breaker count.
		c.logger.Warn("provider returned definitive failure", map[string]interface{}{
			"provider": c.transport.Name(),
			"error":    err.Error(),
		})
		return "", domain.ErrProviderUnavailable
	}
	return "", domain.ErrProviderUnavailable
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ ports.Provider = (*Client)(nil)
