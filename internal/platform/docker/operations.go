package docker

import (
	"context"
	"fmt"
)

// EnsureOperation encapsulates inspect-or-create logic for runtime resources.
// An existing resource is left untouched and reported as OutcomeAlreadyExists.
//
// Usage example:
//
//	return (&EnsureOperation{
//	    Name:         name,
//	    ResourceType: "network",
//	    Exists:       func(ctx context.Context) (bool, error) { return c.networkExists(ctx, name) },
//	    Create:       func(ctx context.Context) error { _, err := c.run(ctx, args...); return err },
//	}).Execute(ctx)
type EnsureOperation struct {
	Name         string
	ResourceType string

	// Exists reports whether the resource is already present
	Exists func(ctx context.Context) (bool, error)

	// Create creates the resource
	Create func(ctx context.Context) error
}

// Execute inspects the resource and creates it if absent. A create that
// races with another creator and fails with a name conflict is reported as
// OutcomeAlreadyExists as well.
func (op *EnsureOperation) Execute(ctx context.Context) (Result, error) {
	exists, err := op.Exists(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to inspect %s %s: %w", op.ResourceType, op.Name, err)
	}
	if exists {
		return Result{
			Outcome: OutcomeAlreadyExists,
			Reason:  fmt.Sprintf("%s %s already exists", op.ResourceType, op.Name),
		}, nil
	}

	if err := op.Create(ctx); err != nil {
		if IsAlreadyExists(err) {
			return Result{
				Outcome: OutcomeAlreadyExists,
				Reason:  fmt.Sprintf("%s %s already exists", op.ResourceType, op.Name),
			}, nil
		}
		return Result{}, fmt.Errorf("failed to create %s %s: %w", op.ResourceType, op.Name, err)
	}
	return Result{Outcome: OutcomeCreated}, nil
}

// DeleteOperation encapsulates idempotent stop/remove logic. A resource that
// does not exist yields OutcomeAbsent instead of an error.
type DeleteOperation struct {
	Name         string
	ResourceType string

	// Exists reports whether the resource is present
	Exists func(ctx context.Context) (bool, error)

	// Delete stops or removes the resource
	Delete func(ctx context.Context) error

	// Done is the outcome reported after a successful Delete
	Done Outcome
}

// Execute performs the delete operation.
func (op *DeleteOperation) Execute(ctx context.Context) (Result, error) {
	exists, err := op.Exists(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to inspect %s %s: %w", op.ResourceType, op.Name, err)
	}
	if !exists {
		return Result{Outcome: OutcomeAbsent}, nil
	}

	if err := op.Delete(ctx); err != nil {
		if IsNotFound(err) {
			return Result{Outcome: OutcomeAbsent}, nil
		}
		return Result{}, fmt.Errorf("failed to %s %s %s: %w", verb(op.Done), op.ResourceType, op.Name, err)
	}

	done := op.Done
	if done == "" {
		done = OutcomeRemoved
	}
	return Result{Outcome: done}, nil
}

func verb(o Outcome) string {
	if o == OutcomeStopped {
		return "stop"
	}
	return "remove"
}
