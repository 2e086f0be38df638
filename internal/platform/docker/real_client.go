package docker

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
)

// Options configures a Client.
type Options struct {
	// Binary is the runtime CLI, "docker" if empty.
	Binary string

	// ClusterName and RunID are stamped as labels on every created resource.
	ClusterName string
	RunID       string

	NodeImage     string
	BalancerImage string

	// InitScript is mounted into primaries when the file exists.
	InitScript string

	// Verbose logs every runtime command before it runs.
	Verbose bool
	Logger  logr.Logger
}

// Client implements Runtime on top of the docker CLI.
type Client struct {
	runner Runner
	opts   Options
	log    logr.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRunner replaces the command runner (useful for testing).
func WithRunner(r Runner) ClientOption {
	return func(c *Client) {
		c.runner = r
	}
}

// Ensure interface compliance
var _ Runtime = (*Client)(nil)

// NewClient creates a Client with the given options.
func NewClient(opts Options, clientOpts ...ClientOption) *Client {
	if opts.NodeImage == "" {
		opts.NodeImage = "postgres:17"
	}
	if opts.BalancerImage == "" {
		opts.BalancerImage = "pgbalancer:latest"
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	c := &Client{
		runner: NewExecRunner(opts.Binary),
		opts:   opts,
		log:    log.WithName("docker"),
	}
	for _, opt := range clientOpts {
		opt(c)
	}
	return c
}

// Options returns the options the client was built with.
func (c *Client) Options() Options {
	return c.opts
}

func (c *Client) run(ctx context.Context, args ...string) (Output, error) {
	if c.opts.Verbose {
		c.log.V(1).Info("exec", "cmd", "docker "+strings.Join(args, " "))
	}
	return c.runner.Run(ctx, args...)
}
