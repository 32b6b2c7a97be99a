package errors

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// LogHandler is a Handler that writes diagnostics to a logr.Logger.
type LogHandler struct {
	// Logger receives one line per diagnostic. The zero value discards output.
	Logger logr.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// NewLogHandler returns a LogHandler that logs to stderr.
func NewLogHandler() *LogHandler {
	return &LogHandler{Logger: StderrLogger("xtype")}
}

// StderrLogger returns a funcr-backed logger writing to stderr.
func StderrLogger(name string) logr.Logger {
	return WriterLogger(os.Stderr, name)
}

// WriterLogger returns a funcr-backed logger writing one line per entry to w.
func WriterLogger(w io.Writer, name string) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "[%s] %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{}).WithName(name)
}

// HandleDiagnostic logs d as a warning.
func (h *LogHandler) HandleDiagnostic(d *Diagnostic) {
	if d == nil {
		return
	}
	kv := []any{"op", d.Op, "kind", d.Kind.String()}
	if d.Key != "" {
		kv = append(kv, "key", d.Key)
	}
	if h.Verbose && d.StackTrace != "" {
		kv = append(kv, "stack", d.StackTrace)
	}
	msg := "warning"
	if d.Err != nil {
		msg = d.Err.Error()
	}
	h.Logger.Info(msg, kv...)
}

// Collector is a Handler that records every diagnostic it receives.
// It is safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	items []*Diagnostic
}

// HandleDiagnostic records d.
func (c *Collector) HandleDiagnostic(d *Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of the recorded diagnostics in report order.
func (c *Collector) Diagnostics() []*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Kinds returns the kinds of the recorded diagnostics in report order.
func (c *Collector) Kinds() []Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	kinds := make([]Kind, len(c.items))
	for i, d := range c.items {
		kinds[i] = d.Kind
	}
	return kinds
}

// Count returns how many diagnostics of kind k were recorded.
func (c *Collector) Count(k Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.items {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Reset discards all recorded diagnostics.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
