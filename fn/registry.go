// Package fn implements the explicit function registry the Design
// Notes call for: eval(CallHolder) only ever dispatches to a function
// the embedding program registered by name ahead of time. There is no
// reflection-based discovery and no dynamic code loading — a tuple
// space process can only evaluate what it was told about.
package fn

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/lindadb/ldb/lv"
)

// Func is a registered callable: it receives the CallHolder's argument
// tuple and returns the result tuple to insert into the space.
type Func func(args lv.Tuple) (lv.Tuple, error)

// Registry holds the named functions eval(fn_call) may invoke.
type Registry struct {
	mu   sync.RWMutex
	fns  map[string]Func
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Func)}
}

// Register adds fn under name, replacing any previous registration.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[name] = fn
}

// Unregister removes name, if present.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.fns, name)
}

// Call looks up h's name and invokes it with h's argument tuple. An
// unregistered name is a LogicError-class failure (§7): the caller
// asked the space to evaluate something it was never told about.
func (r *Registry) Call(h lv.CallHolder) (lv.Tuple, error) {
	r.mu.RLock()
	fn, ok := r.fns[h.Name()]
	r.mu.RUnlock()
	if !ok {
		return lv.Tuple{}, errors.Errorf("fn: no function registered under name %q", h.Name())
	}
	return fn(h.Args())
}
