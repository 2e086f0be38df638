package handlers

import (
	"context"
	"fmt"
)

// Destroy handles the destroy command.
//
// It removes every balancer before its backends, then any leftover
// instance labelled with the cluster name, and finally the network.
func Destroy(ctx context.Context, opts Options, stopFirst bool) error {
	s, err := newSession(opts, stopFirst)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.orch.Destroy(ctx); err != nil {
		if cerr := checkContext(ctx); cerr != nil {
			return cerr
		}
		return fmt.Errorf("destroy failed: %w", err)
	}
	return nil
}
