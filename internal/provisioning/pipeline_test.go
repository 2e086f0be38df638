package provisioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(obs Observer) *Context {
	return &Context{
		Context:  context.Background(),
		Observer: obs,
		Sleep:    func(context.Context, time.Duration) error { return nil },
	}
}

func TestRunPhases_Success(t *testing.T) {
	t.Parallel()
	var executed []string
	record := func(name string) Phase {
		return PhaseFunc{PhaseName: name, Fn: func(*Context) error {
			executed = append(executed, name)
			return nil
		}}
	}

	obs := NewMockObserver()
	err := RunPhases(newTestContext(obs), []Phase{record("validation"), record("network"), record("compute")})

	require.NoError(t, err)
	assert.Equal(t, []string{"validation", "network", "compute"}, executed)
	assert.Equal(t, []EventType{
		EventPhaseStarted, EventPhaseCompleted,
		EventPhaseStarted, EventPhaseCompleted,
		EventPhaseStarted, EventPhaseCompleted,
	}, obs.eventTypes())
}

func TestRunPhases_StopsOnError(t *testing.T) {
	t.Parallel()
	var executed []string
	boom := errors.New("network create failed")

	phases := []Phase{
		PhaseFunc{PhaseName: "network", Fn: func(*Context) error {
			executed = append(executed, "network")
			return boom
		}},
		PhaseFunc{PhaseName: "compute", Fn: func(*Context) error {
			executed = append(executed, "compute")
			return nil
		}},
	}

	obs := NewMockObserver()
	err := RunPhases(newTestContext(obs), phases)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "network phase failed")
	assert.Equal(t, []string{"network"}, executed)
	assert.Equal(t, []EventType{EventPhaseStarted, EventPhaseFailed}, obs.eventTypes())
}

func TestRunPhases_Empty(t *testing.T) {
	t.Parallel()
	require.NoError(t, RunPhases(newTestContext(NewMockObserver()), nil))
}
