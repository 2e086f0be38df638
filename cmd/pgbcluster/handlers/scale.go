package handlers

import (
	"context"
	"fmt"
)

// AddReplica handles the add-replica command.
//
// The new replicas exist only at runtime; the configuration file is not
// rewritten, and the balancer must be restarted to route to them.
func AddReplica(ctx context.Context, opts Options, group string, count int) error {
	if group == "" {
		return fmt.Errorf("--balancer is required")
	}
	if count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", count)
	}

	s, err := newSession(opts, false)
	if err != nil {
		return err
	}
	defer s.close()

	added, err := s.orch.AddReplicas(ctx, group, count)
	for _, n := range added {
		fmt.Fprintf(stdout, "  replica %d: %s %s:%d (%s)\n", n.ID, n.InstanceName, n.Host, n.Port, n.IPAddress)
	}
	if err != nil {
		if cerr := checkContext(ctx); cerr != nil {
			return cerr
		}
		return err
	}
	return nil
}

// RemoveReplica handles the remove-replica command.
func RemoveReplica(ctx context.Context, opts Options, group string, id int) error {
	if group == "" {
		return fmt.Errorf("--balancer is required")
	}
	if id <= 0 {
		return fmt.Errorf("--node must be a positive replica identifier, got %d", id)
	}

	s, err := newSession(opts, false)
	if err != nil {
		return err
	}
	defer s.close()

	removed, err := s.orch.RemoveReplica(ctx, group, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  removed replica %d: %s\n", removed.ID, removed.InstanceName)
	return nil
}
