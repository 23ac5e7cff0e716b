package workload

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownWorkload is returned when a name is not registered.
var ErrUnknownWorkload = errors.New("unknown workload")

// SelectAll selects every registered workload.
const SelectAll = "all"

// Options parameterizes the built-in workloads.
type Options struct {
	// Start is the prime-scan counter's initial value.
	Start int64
	// OnPrime receives every prime found by the prime scan.
	OnPrime func(n int64)
}

// Constructor builds a workload from options.
type Constructor func(Options) Workload

// Factory creates workloads by name.
type Factory interface {
	// List returns the registered names in sorted order.
	List() []string
	// Get builds the named workload.
	Get(name string) (Workload, error)
	// Register adds or replaces a constructor.
	Register(name string, ctor Constructor) error
}

// Registry is the default Factory implementation. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	opts  Options
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry whose constructors receive opts.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts, ctors: make(map[string]Constructor)}
}

// NewDefaultFactory returns a registry holding the built-in workloads.
func NewDefaultFactory(opts Options) *Registry {
	r := NewRegistry(opts)
	_ = r.Register("prime-scan", func(o Options) Workload {
		return &PrimeScan{Start: o.Start, OnPrime: o.OnPrime}
	})
	_ = r.Register("prime-count", func(Options) Workload { return PrimeCount{} })
	_ = r.Register("sieve", func(Options) Workload { return Sieve{} })
	_ = r.Register("fibonacci", func(Options) Workload { return &Fibonacci{} })
	return r
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Get(name string) (Workload, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	opts := r.opts
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkload, name)
	}
	return ctor(opts), nil
}

func (r *Registry) Register(name string, ctor Constructor) error {
	if name == "" || name == SelectAll {
		return fmt.Errorf("invalid workload name %q", name)
	}
	if ctor == nil {
		return fmt.Errorf("nil constructor for workload %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = ctor
	return nil
}

// Select resolves a selection, either a registered name or "all", into the
// workloads to run. "all" yields every workload in List order.
func Select(f Factory, selection string) ([]Workload, error) {
	if selection != SelectAll {
		w, err := f.Get(selection)
		if err != nil {
			return nil, err
		}
		return []Workload{w}, nil
	}
	names := f.List()
	out := make([]Workload, 0, len(names))
	for _, name := range names {
		w, err := f.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
