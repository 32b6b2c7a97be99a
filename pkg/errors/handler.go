package errors

import (
	"runtime"
	"strings"
	"sync"
	"time"
)

// Handler receives diagnostics reported by the engine.
type Handler interface {
	// HandleDiagnostic is called once per reported problem.
	HandleDiagnostic(d *Diagnostic)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(d *Diagnostic)

// HandleDiagnostic calls f(d).
func (f HandlerFunc) HandleDiagnostic(d *Diagnostic) {
	f(d)
}

// Tee returns a Handler that forwards every diagnostic to each non-nil h in
// order.
func Tee(handlers ...Handler) Handler {
	return HandlerFunc(func(d *Diagnostic) {
		for _, h := range handlers {
			if h != nil {
				h.HandleDiagnostic(d)
			}
		}
	})
}

var (
	// DefaultHandler is the global diagnostic handler used by managers that
	// were not given one. It defaults to a LogHandler on stderr.
	DefaultHandler Handler = NewLogHandler()

	handlerMu sync.RWMutex
)

// SetHandler configures the global diagnostic handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h Handler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = NewLogHandler()
	} else {
		DefaultHandler = h
	}
}

func getHandler() Handler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends a diagnostic to h, or to the global handler when h is nil.
// If d.Timestamp is zero, it is set to the current time.
func Report(h Handler, d *Diagnostic) {
	if d == nil {
		return
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now()
	}
	if h == nil {
		h = getHandler()
	}
	if h != nil {
		h.HandleDiagnostic(d)
	}
}

// Recover converts a panic into a KindPanic diagnostic reported to h and
// stores the resulting error in *errp.
// Usage: defer errors.Recover(h, "core.Manager.Create", &err)
func Recover(h Handler, op string, errp *error) {
	if r := recover(); r != nil {
		d := &Diagnostic{
			Op:         op,
			Kind:       KindPanic,
			Err:        &PanicError{Op: op, Value: r},
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		}
		Report(h, d)
		if errp != nil {
			*errp = d
		}
	}
}

// CaptureStack returns the current call stack as a string.
// It skips the first few frames to exclude the CaptureStack call itself.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}

// itoa converts an integer to a string without allocating.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := false
	if i < 0 {
		neg = true
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
