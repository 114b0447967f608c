// Package state holds the runtime flags shared between the probes and the CLI.
package state

import (
	"os"
	"strings"
	"sync"
)

// DebugEnv is the environment variable that seeds the debug flag.
const DebugEnv = "OWLWATCH_DEBUG"

// UpdateStatus is the outcome of the last completed version check.
type UpdateStatus int

const (
	// UpdateUnknown means no version check has completed yet
	UpdateUnknown UpdateStatus = iota
	// UpdateAvailable means the published version differs from ours
	UpdateAvailable
	// UpToDate means the published version matches ours
	UpToDate
)

func (s UpdateStatus) String() string {
	switch s {
	case UpdateAvailable:
		return "available"
	case UpToDate:
		return "up-to-date"
	default:
		return "unknown"
	}
}

// State is the process-wide runtime state. It is passed explicitly to every
// component that needs it and is safe for concurrent use.
type State struct {
	mu     sync.RWMutex
	debug  bool
	update UpdateStatus
}

// New returns a State with debug disabled and no update outcome.
func New() *State {
	return &State{}
}

// FromEnv returns a State whose debug flag is read from OWLWATCH_DEBUG.
// Any value other than "true" (case-insensitive) leaves debug off.
func FromEnv() *State {
	s := New()
	s.debug = parseFlag(os.Getenv(DebugEnv))
	return s
}

func parseFlag(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// Debug reports whether debug mode is active.
func (s *State) Debug() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debug
}

// SetDebug switches debug mode.
func (s *State) SetDebug(debug bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = debug
}

// UpdateStatus returns the outcome of the last completed version check.
func (s *State) UpdateStatus() UpdateStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.update
}

// SetUpdateAvailable records a version check outcome, replacing any
// previous one.
func (s *State) SetUpdateAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if available {
		s.update = UpdateAvailable
	} else {
		s.update = UpToDate
	}
}

// SetUpdateAvailableIfUnset records an outcome only when none is recorded yet
// and reports whether it did.
func (s *State) SetUpdateAvailableIfUnset(available bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.update != UpdateUnknown {
		return false
	}
	if available {
		s.update = UpdateAvailable
	} else {
		s.update = UpToDate
	}
	return true
}
