package testing

import (
	"fmt"
	"strings"
	"sync"

	"github.com/imamik/pgbcluster/internal/provisioning"
)

// RecordingObserver is a provisioning.Observer that records everything it
// is given. It is safe for concurrent use.
type RecordingObserver struct {
	mu       sync.Mutex
	messages []string
	warnings []string
	debug    []string
	events   []provisioning.Event
}

var _ provisioning.Observer = (*RecordingObserver)(nil)

// NewRecordingObserver creates an empty recording observer.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

func (o *RecordingObserver) Printf(format string, v ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, fmt.Sprintf(format, v...))
}

func (o *RecordingObserver) Warnf(format string, v ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, fmt.Sprintf(format, v...))
}

func (o *RecordingObserver) Debugf(format string, v ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.debug = append(o.debug, fmt.Sprintf(format, v...))
}

func (o *RecordingObserver) Event(e provisioning.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *RecordingObserver) Progress(phase string, current, total int) {
	o.Event(provisioning.Event{
		Type:    provisioning.EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("%d/%d", current, total),
	})
}

// WithFields returns the same recorder so that child output is captured too.
func (o *RecordingObserver) WithFields(map[string]string) provisioning.Observer {
	return o
}

// Messages returns the recorded Printf output.
func (o *RecordingObserver) Messages() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.messages...)
}

// Warnings returns the recorded warnings.
func (o *RecordingObserver) Warnings() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.warnings...)
}

// Events returns the recorded events.
func (o *RecordingObserver) Events() []provisioning.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]provisioning.Event(nil), o.events...)
}

// EventsOfType returns the resources of all events of type t.
func (o *RecordingObserver) EventsOfType(t provisioning.EventType) []string {
	var out []string
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e.Resource)
		}
	}
	return out
}

// HasWarning reports whether any warning contains substr.
func (o *RecordingObserver) HasWarning(substr string) bool {
	for _, w := range o.Warnings() {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

// HasMessage reports whether any Printf message contains substr.
func (o *RecordingObserver) HasMessage(substr string) bool {
	for _, m := range o.Messages() {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
