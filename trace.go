package taxlot

import (
	"fmt"
	"log"
	"strings"
)

// Tracer receives diagnostic events from batch processing. It is injected
// by the caller and sits entirely outside the engines' critical path: the
// allocation, adjustment, and gain computations never emit events, only the
// orchestration around them does.
type Tracer interface {
	// Event records one diagnostic event with alternating key/value pairs.
	Event(event string, keyvals ...any)
}

// Discard is the default tracer; it drops every event.
var Discard Tracer = discardTracer{}

type discardTracer struct{}

func (discardTracer) Event(string, ...any) {}

// LogTracer writes events to a standard library logger, one line per event
// in "event key=value" form.
type LogTracer struct {
	Logger *log.Logger // nil means the log package default logger
}

func (t LogTracer) Event(event string, keyvals ...any) {
	var b strings.Builder
	b.WriteString(event)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%q", keyvals[i], fmt.Sprint(keyvals[i+1]))
	}
	if t.Logger != nil {
		t.Logger.Print(b.String())
		return
	}
	log.Print(b.String())
}
