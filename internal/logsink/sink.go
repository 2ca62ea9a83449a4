// Package logsink provides the user-visible session log: an append-only,
// capped ring of recent entries served by the HTTP API.
package logsink

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// MaxEntries is the number of entries retained; older entries are dropped.
const MaxEntries = 50

// Level classifies a log entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is one log line.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
}

// Sink collects entries newest-first up to MaxEntries.
// All methods are safe for concurrent use.
type Sink struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
	echo    bool
}

// New creates an empty Sink that mirrors entries to the process log.
func New() *Sink {
	return &Sink{now: time.Now, echo: true}
}

// NewSilent creates a Sink that does not mirror to the process log,
// for use in tests.
func NewSilent() *Sink {
	return &Sink{now: time.Now}
}

// Infof appends an info-level entry.
func (s *Sink) Infof(format string, args ...any) { s.append(LevelInfo, format, args...) }

// Warnf appends a warn-level entry.
func (s *Sink) Warnf(format string, args ...any) { s.append(LevelWarn, format, args...) }

// Errorf appends an error-level entry.
func (s *Sink) Errorf(format string, args ...any) { s.append(LevelError, format, args...) }

// Debugf appends a debug-level entry.
func (s *Sink) Debugf(format string, args ...any) { s.append(LevelDebug, format, args...) }

func (s *Sink) append(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	s.mu.Lock()
	entry := Entry{Timestamp: s.now(), Level: level, Message: msg}
	// Prepend: entries are kept newest-first.
	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
	echo := s.echo
	s.mu.Unlock()

	if echo {
		log.Printf("[%s] %s", level, msg)
	}
}

// Entries returns a copy of the retained entries, newest first.
func (s *Sink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of retained entries.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
