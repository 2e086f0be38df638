package provisioning

import (
	"fmt"
	"strings"
)

// ValidationError represents a topology validation error or warning.
type ValidationError struct {
	Field    string // Topology element that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase implements the Phase interface for pre-flight validation.
// Structural problems abort; address problems are reported as warnings.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	var errs []string
	for _, ve := range Validate(ctx) {
		if ve.IsError() {
			errs = append(errs, ve.Error())
			continue
		}
		ctx.Observer.Warnf("%s", ve.Message)
		ctx.Observer.Event(Event{
			Type:    EventValidationWarning,
			Phase:   vp.Name(),
			Message: ve.Message,
			Fields:  map[string]string{"field": ve.Field},
		})
	}

	if len(errs) > 0 {
		return fmt.Errorf("topology validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Validate runs all pre-flight checks against the context's cluster.
func Validate(ctx *Context) []ValidationError {
	var errs []ValidationError
	c := ctx.Cluster

	if c == nil {
		return []ValidationError{{Field: "cluster", Message: "no cluster loaded", Severity: "error"}}
	}

	if c.NetworkName == "" {
		errs = append(errs, ValidationError{
			Field:    "network.name",
			Message:  "network name is required",
			Severity: "error",
		})
	}

	if len(c.Groups) == 0 {
		errs = append(errs, ValidationError{
			Field:    "balancers",
			Message:  "at least one balancer group is required",
			Severity: "error",
		})
	}

	for i, g := range c.Groups {
		if g.Primary == nil {
			errs = append(errs, ValidationError{
				Field:    fmt.Sprintf("balancers[%d].primary", i),
				Message:  fmt.Sprintf("group %s has no primary", g.Name),
				Severity: "error",
			})
		}
	}

	for _, problem := range c.Check() {
		errs = append(errs, ValidationError{
			Field:    "network",
			Message:  problem,
			Severity: "warning",
		})
	}

	return errs
}
