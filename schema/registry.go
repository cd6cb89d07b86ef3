package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/signadot/objmap/debug"
	"github.com/signadot/objmap/ir/kpath"
)

var (
	// ErrUnknownType is returned when a type id has no registered
	// descriptor.
	ErrUnknownType = errors.New("unknown type")
	// ErrDuplicateFieldKeyPath matches *DuplicateKeyPathError.
	ErrDuplicateFieldKeyPath = errors.New("duplicate field key path")
	ErrInvalidDescriptor     = errors.New("invalid type descriptor")
	// ErrInstanceType is returned by accessors given an instance of
	// another Go type.
	ErrInstanceType = errors.New("instance has the wrong type")
)

// DuplicateKeyPathError reports two fields of one type reading the same
// key path with different expectations.
type DuplicateKeyPathError struct {
	Type    TypeID
	KeyPath []string
	First   *Field
	Second  *Field
}

func (e *DuplicateKeyPathError) Error() string {
	return fmt.Sprintf("%s: type %s: fields %q (%s) and %q (%s) both read %s",
		ErrDuplicateFieldKeyPath, e.Type,
		e.First.Name, e.First.Expected, e.Second.Name, e.Second.Expected,
		kpath.String(e.KeyPath))
}

func (e *DuplicateKeyPathError) Is(target error) bool {
	return target == ErrDuplicateFieldKeyPath
}

// Snapshot is an immutable view of the registered descriptors.
type Snapshot struct {
	version uint64
	types   map[TypeID]*TypeDescriptor
}

var emptySnapshot = &Snapshot{types: map[TypeID]*TypeDescriptor{}}

func (s *Snapshot) Lookup(id TypeID) (*TypeDescriptor, error) {
	d, ok := s.types[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, id)
	}
	return d, nil
}

// Version counts the registrations that produced s.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Types returns the registered ids in sorted order.
func (s *Snapshot) Types() []TypeID {
	return slices.Sorted(maps.Keys(s.types))
}

// Registry holds the published type descriptors.
//
// Register calls are serialized. Readers take a Snapshot without locking
// and keep seeing it unchanged while later registrations publish new
// snapshots. Registering an id again replaces its descriptor.
//
// The zero Registry is empty and ready to use.
type Registry struct {
	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register checks and publishes descs together. If any descriptor is
// invalid none is published.
func (r *Registry) Register(descs ...*TypeDescriptor) error {
	resolved := make([]*TypeDescriptor, len(descs))
	for i, d := range descs {
		rd, err := resolve(d)
		if err != nil {
			return err
		}
		resolved[i] = rd
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.Snapshot()
	next := &Snapshot{
		version: cur.version + 1,
		types:   maps.Clone(cur.types),
	}
	for _, d := range resolved {
		if debug.Registry() {
			_, replaced := next.types[d.ID]
			debug.Logf("register %s (%d fields) replaced=%t version=%d", d, len(d.Fields), replaced, next.version)
		}
		next.types[d.ID] = d
	}
	r.snap.Store(next)
	return nil
}

// Snapshot returns the current set of descriptors.
func (r *Registry) Snapshot() *Snapshot {
	if s := r.snap.Load(); s != nil {
		return s
	}
	return emptySnapshot
}

func (r *Registry) Lookup(id TypeID) (*TypeDescriptor, error) {
	return r.Snapshot().Lookup(id)
}

func (r *Registry) Types() []TypeID {
	return r.Snapshot().Types()
}

func (r *Registry) Version() uint64 {
	return r.Snapshot().Version()
}

var defaultRegistry = NewRegistry()

// DefaultRegistry is the process wide registry used by the package level
// functions here and in gomap.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register publishes descs in the default registry.
func Register(descs ...*TypeDescriptor) error {
	return defaultRegistry.Register(descs...)
}

// Lookup finds a descriptor in the default registry.
func Lookup(id TypeID) (*TypeDescriptor, error) {
	return defaultRegistry.Lookup(id)
}
