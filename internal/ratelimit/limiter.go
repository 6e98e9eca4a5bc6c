package ratelimit

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/token-tracker/internal/adapter"
	"github.com/feral-file/token-tracker/internal/logger"
)

// Config holds the request budget of an RPC endpoint
type Config struct {
	// RequestsPerSecond is the sustained rate, zero disables limiting
	RequestsPerSecond float64
	// Burst is the number of calls allowed at once, defaults to 1
	Burst int
}

// rpcClient blocks every call until the limiter grants a token
type rpcClient struct {
	name    string
	inner   adapter.RPCClient
	limiter *rate.Limiter
}

// NewRPCClient wraps client so that every call waits for the endpoint's budget.
// The client is returned unchanged when limiting is disabled.
func NewRPCClient(name string, client adapter.RPCClient, cfg Config) (adapter.RPCClient, error) {
	if cfg.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("requests_per_second must not be negative")
	}
	if cfg.RequestsPerSecond == 0 {
		return client, nil
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	return &rpcClient{
		name:    name,
		inner:   client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, nil
}

func (c *rpcClient) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	// Block until token is available
	if err := c.limiter.Wait(ctx); err != nil {
		logger.DebugCtx(ctx, "Rate limit wait aborted",
			zap.String("provider", c.name),
			zap.String("method", method),
			zap.Error(err),
		)
		return fmt.Errorf("rate limit wait for %s: %w", c.name, err)
	}
	return c.inner.CallContext(ctx, result, method, args...)
}

func (c *rpcClient) Close() {
	c.inner.Close()
}
