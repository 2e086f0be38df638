package provisioning

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/pgbcluster/internal/platform/docker"
)

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger

	// Warnf reports a soft failure that does not abort the operation
	Warnf(format string, v ...any)

	// Debugf reports detail only shown in verbose mode
	Debugf(format string, v ...any)

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "network", "compute")
	Message   string            // Human-readable message
	Resource  string            // Resource name if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceSkipped indicates a resource was not created on purpose.
	EventResourceSkipped EventType = "resource.skipped"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted or stopped.
	EventResourceDeleted EventType = "resource.deleted"
	// EventResourceAbsent indicates a resource to delete did not exist.
	EventResourceAbsent EventType = "resource.absent"

	// EventHealthWaiting indicates a health wait has started.
	EventHealthWaiting EventType = "health.waiting"
	// EventHealthHealthy indicates an instance reported healthy.
	EventHealthHealthy EventType = "health.healthy"
	// EventHealthTimeout indicates a health wait gave up.
	EventHealthTimeout EventType = "health.timeout"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// ConsoleObserver implements Observer on top of a logr.Logger.
type ConsoleObserver struct {
	log           logr.Logger
	contextFields map[string]string
}

// NewConsoleObserver creates an observer writing to log.
func NewConsoleObserver(log logr.Logger) *ConsoleObserver {
	return &ConsoleObserver{
		log:           log,
		contextFields: make(map[string]string),
	}
}

// NewDiscardObserver returns an observer that drops everything.
func NewDiscardObserver() *ConsoleObserver {
	return NewConsoleObserver(logr.Discard())
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	o.log.Info(fmt.Sprintf(format, v...), o.keysAndValues(nil)...)
}

// Warnf implements Observer.
func (o *ConsoleObserver) Warnf(format string, v ...any) {
	o.log.Info("WARNING: "+fmt.Sprintf(format, v...), o.keysAndValues(nil)...)
}

// Debugf implements Observer.
func (o *ConsoleObserver) Debugf(format string, v ...any) {
	o.log.V(1).Info(fmt.Sprintf(format, v...), o.keysAndValues(nil)...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	kv = append(kv, o.keysAndValues(event.Fields)...)

	// Phase and deletion-in-progress chatter is only useful in verbose mode.
	switch event.Type {
	case EventPhaseStarted, EventPhaseCompleted, EventResourceCreating, EventResourceDeleting, EventProgress:
		o.log.V(1).Info(event.Message, kv...)
	default:
		o.log.Info(event.Message, kv...)
	}
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	msg := fmt.Sprintf("%d/%d", current, total)
	if total > 0 {
		msg = fmt.Sprintf("%d/%d (%d%%)", current, total, (current*100)/total)
	}
	o.Event(Event{Type: EventProgress, Phase: phase, Message: msg})
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &ConsoleObserver{log: o.log, contextFields: newFields}
}

// keysAndValues merges the observer's context fields with extra and returns
// them as sorted logr key/value pairs. Event fields win over context fields.
func (o *ConsoleObserver) keysAndValues(extra map[string]string) []any {
	merged := make(map[string]string, len(o.contextFields)+len(extra))
	for k, v := range o.contextFields {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, merged[k])
	}
	return kv
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s %s", resourceType, resourceName),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceDeleting logs a resource deletion start event.
func LogResourceDeleting(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("removing %s %s", resourceType, resourceName),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResult logs the event matching a runtime result. Skipped results are
// reported as warnings.
func LogResult(observer Observer, phase, resourceType, resourceName string, res docker.Result) {
	e := Event{
		Phase:    phase,
		Resource: resourceName,
		Fields:   map[string]string{"type": resourceType},
	}

	switch res.Outcome {
	case docker.OutcomeCreated:
		e.Type = EventResourceCreated
		e.Message = fmt.Sprintf("%s %s created", resourceType, resourceName)
	case docker.OutcomeAlreadyExists:
		e.Type = EventResourceExists
		e.Message = fmt.Sprintf("%s %s already exists", resourceType, resourceName)
	case docker.OutcomeStopped:
		e.Type = EventResourceDeleted
		e.Message = fmt.Sprintf("%s %s stopped", resourceType, resourceName)
	case docker.OutcomeRemoved:
		e.Type = EventResourceDeleted
		e.Message = fmt.Sprintf("%s %s removed", resourceType, resourceName)
	case docker.OutcomeAbsent:
		e.Type = EventResourceAbsent
		e.Message = fmt.Sprintf("%s %s not found", resourceType, resourceName)
	case docker.OutcomeSkipped:
		observer.Warnf("%s %s skipped: %s", resourceType, resourceName, res.Reason)
		e.Type = EventResourceSkipped
		e.Message = fmt.Sprintf("%s %s skipped", resourceType, resourceName)
		e.Fields["reason"] = res.Reason
	default:
		return
	}
	observer.Event(e)
}
