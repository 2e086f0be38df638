package docker

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("no such container"), false},
		{"container", cmdErr("Error response from daemon: No such container: lb1_primary"), true},
		{"object", cmdErr("Error: No such object: lb1_primary"), true},
		{"network", cmdErr("Error response from daemon: network demo-net not found"), true},
		{"image", cmdErr("Error: No such image: pgbalancer:latest"), true},
		{"wrapped", fmt.Errorf("outer: %w", cmdErr("No such container: x")), true},
		{"conflict", cmdErr("Conflict. The container name \"/x\" is already in use"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestIsAlreadyExists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", cmdErr("Error response from daemon: network with name demo-net already exists"), true},
		{"container", cmdErr("Conflict. The container name \"/lb1_primary\" is already in use by container \"abc\""), true},
		{"other", cmdErr("invalid subnet"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsAlreadyExists(tt.err))
		})
	}
}

func TestIsNotRunning(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotRunning(cmdErr("Error response from daemon: container abc is not running")))
	assert.False(t, IsNotRunning(cmdErr("No such container: abc")))
}
