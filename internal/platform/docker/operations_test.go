package docker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureOperation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		exists      bool
		existsErr   error
		createErr   error
		wantOutcome Outcome
		wantCreate  bool
		wantErr     string
	}{
		{name: "creates when absent", wantOutcome: OutcomeCreated, wantCreate: true},
		{name: "skips existing", exists: true, wantOutcome: OutcomeAlreadyExists},
		{name: "name conflict on create", createErr: cmdErr("name is already in use"), wantOutcome: OutcomeAlreadyExists, wantCreate: true},
		{name: "create failure", createErr: cmdErr("invalid reference format"), wantCreate: true, wantErr: "failed to create instance x"},
		{name: "inspect failure", existsErr: errors.New("daemon down"), wantErr: "failed to inspect instance x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			created := false
			res, err := (&EnsureOperation{
				Name:         "x",
				ResourceType: "instance",
				Exists: func(context.Context) (bool, error) {
					return tt.exists, tt.existsErr
				},
				Create: func(context.Context) error {
					created = true
					return tt.createErr
				},
			}).Execute(context.Background())

			assert.Equal(t, tt.wantCreate, created)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, res.Outcome)
		})
	}
}

func TestDeleteOperation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		exists      bool
		deleteErr   error
		done        Outcome
		wantOutcome Outcome
		wantDelete  bool
		wantErr     string
	}{
		{name: "absent", wantOutcome: OutcomeAbsent},
		{name: "removes existing", exists: true, wantOutcome: OutcomeRemoved, wantDelete: true},
		{name: "stops existing", exists: true, done: OutcomeStopped, wantOutcome: OutcomeStopped, wantDelete: true},
		{name: "vanished before delete", exists: true, deleteErr: cmdErr("No such container: x"), wantOutcome: OutcomeAbsent, wantDelete: true},
		{name: "stop failure", exists: true, done: OutcomeStopped, deleteErr: cmdErr("permission denied"), wantDelete: true, wantErr: "failed to stop instance x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deleted := false
			res, err := (&DeleteOperation{
				Name:         "x",
				ResourceType: "instance",
				Exists: func(context.Context) (bool, error) {
					return tt.exists, nil
				},
				Delete: func(context.Context) error {
					deleted = true
					return tt.deleteErr
				},
				Done: tt.done,
			}).Execute(context.Background())

			assert.Equal(t, tt.wantDelete, deleted)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, res.Outcome)
		})
	}
}
