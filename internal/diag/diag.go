// Package diag centralizes the recoverable-error reporting every
// component needs: parse warnings, empty-cache grafts, and degenerate
// polygons are logged and then swallowed, never fatal.
package diag

import (
	"log"
	"sync"
)

// Flags collects recoverable warnings raised while building one tree
// type or composing one forest. Each kind is surfaced once per build.
type Flags struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewFlags() *Flags {
	return &Flags{seen: make(map[string]bool)}
}

// Warn logs msg the first time kind is seen on this Flags instance and
// records it as having fired; subsequent calls with the same kind are
// silent. Returns true the first time, false otherwise.
func (f *Flags) Warn(kind, msg string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen[kind] {
		return false
	}
	f.seen[kind] = true
	log.Printf("warning: %s: %s", kind, msg)
	return true
}

// Fired reports whether kind has already been warned about.
func (f *Flags) Fired(kind string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[kind]
}

// Progress logs a coarse percentage-complete line of the form
// "<label> progress: <percent>%".
func Progress(label string, percent int) {
	log.Printf("%s progress: %d%%", label, percent)
}

// Skip logs a recoverable skip (such as an empty cache graft)
// without deduplication, since these are expected to recur across a
// large forest and the caller decides how noisy to be.
func Skip(reason string, args ...any) {
	log.Printf("skip: "+reason, args...)
}
