package report

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Severity of a user-facing message.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	}
	return "INFO"
}

// Reporter is the sink import/export operators send status messages to.
type Reporter interface {
	Report(sev Severity, format string, args ...any)
}

// Console writes info to Out and warnings/errors to Err, one line each.
// It is safe for use by concurrent workers.
type Console struct {
	mu  sync.Mutex
	Out io.Writer
	Err io.Writer
}

// NewConsole returns a Console on stdout/stderr.
func NewConsole() *Console {
	return &Console{Out: os.Stdout, Err: os.Stderr}
}

func (c *Console) Report(sev Severity, format string, args ...any) {
	w := c.Out
	if sev != Info {
		w = c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(w, "%s: %s\n", sev, fmt.Sprintf(format, args...))
}

// Entry is one recorded message.
type Entry struct {
	Severity Severity
	Message  string
}

// Recorder keeps every message in memory.
type Recorder struct {
	mu      sync.Mutex
	Entries []Entry
}

func (r *Recorder) Report(sev Severity, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, Entry{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// Count returns how many messages of the given severity were recorded.
func (r *Recorder) Count(sev Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.Entries {
		if e.Severity == sev {
			n++
		}
	}
	return n
}

// Discard drops every message.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Severity, string, ...any) {}
