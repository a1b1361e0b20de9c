// Package intern provides the process-wide (or per-invocation) string
// interner backing core.Name. A Name's equality is identity on its interned
// key, never a string comparison, so two references to the same identifier
// anywhere in a module compare equal in O(1).
package intern

import "sync"

// Name is an interned identifier; use Interner.Intern to produce one. The
// zero value is the Name of the first text an Interner interns.
type Name struct {
	id uint32
}

// Interner maps strings to stable Names and back. It is safe for concurrent
// use, though the core itself is single-threaded (spec.md §5); concurrency
// safety here only protects a shared interner reused across CLI commands in
// the same process.
type Interner struct {
	mu      sync.RWMutex
	byText  map[string]Name
	byID    []string
}

// New creates an empty interner.
func New() *Interner {
	return &Interner{
		byText: make(map[string]Name),
	}
}

// Intern returns the Name for text, allocating a new one deterministically
// (in first-seen order) if text hasn't been interned yet.
func (in *Interner) Intern(text string) Name {
	in.mu.RLock()
	if n, ok := in.byText[text]; ok {
		in.mu.RUnlock()
		return n
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if n, ok := in.byText[text]; ok {
		return n
	}
	n := Name{id: uint32(len(in.byID))}
	in.byID = append(in.byID, text)
	in.byText[text] = n
	return n
}

// Resolve returns the text a Name was interned from, or false if it was
// never produced by this interner.
func (in *Interner) Resolve(n Name) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(n.id) >= len(in.byID) {
		return "", false
	}
	return in.byID[n.id], true
}

// MustResolve is Resolve but panics on an unknown Name; useful in contexts
// (pretty-printing, emission) where the Name is known to have come from the
// same interner that produced it.
func (in *Interner) MustResolve(n Name) string {
	text, ok := in.Resolve(n)
	if !ok {
		panic("intern: unknown Name")
	}
	return text
}
