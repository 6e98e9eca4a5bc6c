package adapter

import (
	"context"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
)

// RPCClient defines an interface for JSON-RPC 2.0 calls to enable mocking
//
//go:generate mockgen -source=rpc.go -destination=../mocks/rpc.go -package=mocks -mock_names=RPCClient=MockRPCClient,RPCDialer=MockRPCDialer
type RPCClient interface {
	// CallContext performs a JSON-RPC call and decodes the result into result
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error

	// Close closes the connection
	Close()
}

// RPCDialer defines an interface for dialing JSON-RPC endpoints
type RPCDialer interface {
	Dial(ctx context.Context, rawurl string, timeout time.Duration) (RPCClient, error)
}

// RealRPCDialer implements RPCDialer using the go-ethereum rpc package
type RealRPCDialer struct{}

// NewRPCDialer creates a new real JSON-RPC dialer
func NewRPCDialer() RPCDialer {
	return &RealRPCDialer{}
}

// Dial connects to rawurl. A positive timeout bounds every HTTP request.
func (d *RealRPCDialer) Dial(ctx context.Context, rawurl string, timeout time.Duration) (RPCClient, error) {
	var opts []rpc.ClientOption
	if timeout > 0 {
		opts = append(opts, rpc.WithHTTPClient(&http.Client{Timeout: timeout}))
	}

	client, err := rpc.DialOptions(ctx, rawurl, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}
