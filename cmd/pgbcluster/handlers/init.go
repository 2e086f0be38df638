package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/pgbcluster/internal/provisioning/status"
)

// Init handles the init command.
//
// It creates the network, then every group (primary, replicas, balancer)
// and prints the resulting status table.
func Init(ctx context.Context, opts Options) error {
	s, err := newSession(opts, false)
	if err != nil {
		return err
	}
	defer s.close()

	report, err := s.orch.Init(ctx)
	if err != nil {
		if cerr := checkContext(ctx); cerr != nil {
			return cerr
		}
		return fmt.Errorf("init failed: %w", err)
	}

	return status.Render(stdout, report, status.FormatTable)
}
