package handlers

import (
	"context"

	"github.com/imamik/pgbcluster/internal/provisioning/status"
)

// Status handles the status command. It never changes the runtime.
func Status(ctx context.Context, opts Options, output string) error {
	format, err := status.ParseFormat(output)
	if err != nil {
		return err
	}

	s, err := newSession(opts, false)
	if err != nil {
		return err
	}
	defer s.close()

	report := s.orch.Status(ctx)
	if err := checkContext(ctx); err != nil {
		return err
	}
	return status.Render(stdout, report, format)
}
