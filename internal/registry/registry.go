package registry

import (
	"errors"
	"fmt"
	"sync"

	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

// ErrRegistryFrozen is returned by Register once the registry has been frozen.
var ErrRegistryFrozen = errors.New("unit system registry is frozen")

// Registry holds the known unit systems. Systems are immutable once registered;
// Register is meant for application startup and Freeze closes it afterwards.
type Registry struct {
	mu      sync.RWMutex
	systems map[string]UnitSystem
	order   []string
	frozen  bool
}

// New creates a Registry containing the supplied systems.
func New(systems ...UnitSystem) (*Registry, error) {
	r := &Registry{
		systems: make(map[string]UnitSystem, len(systems)),
	}

	for _, sys := range systems {
		if err := r.Register(sys); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// NewDefault creates a Registry populated with the built-in systems.
func NewDefault() *Registry {
	r, err := New(Builtin()...)
	if err != nil {
		panic(fmt.Sprintf("registry: invalid built-in unit system: %v", err))
	}
	return r
}

// Register adds a new unit system.
func (r *Registry) Register(sys UnitSystem) error {
	if err := ValidateSystem(sys); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("register %s: %w", sys.ID, ErrRegistryFrozen)
	}

	if _, exists := r.systems[sys.ID]; exists {
		return fmt.Errorf("unit system with ID %s already exists", sys.ID)
	}

	r.systems[sys.ID] = sys.clone()
	r.order = append(r.order, sys.ID)
	return nil
}

// Freeze rejects any further registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Get retrieves a unit system by ID. Absence is a valid outcome.
func (r *Registry) Get(id string) (UnitSystem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sys, ok := r.systems[id]
	if !ok {
		return UnitSystem{}, false
	}
	return sys.clone(), true
}

// List returns all registered systems in registration order.
func (r *Registry) List() []UnitSystem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]UnitSystem, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.systems[id].clone())
	}
	return result
}

// Definition looks up a unit within a system; false if either is unknown.
func (r *Registry) Definition(systemID, symbol string) (UnitDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sys, ok := r.systems[systemID]
	if !ok {
		return UnitDefinition{}, false
	}
	return sys.Definition(symbol)
}

// Units returns the unit symbols of a system in declaration order, or nil if the
// system is unknown.
func (r *Registry) Units(systemID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sys, ok := r.systems[systemID]
	if !ok {
		return nil
	}
	return sys.Symbols()
}

// ValidateUnit reports whether symbol is defined in the system.
func (r *Registry) ValidateUnit(systemID, symbol string) bool {
	_, ok := r.Definition(systemID, symbol)
	return ok
}

// Resolve returns the definition and conversion for a unit, failing when either the
// system or the unit is unknown.
func (r *Registry) Resolve(systemID, symbol string) (Resolution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sys, ok := r.systems[systemID]
	if !ok {
		return Resolution{}, unitserrors.NewUnitSystemNotFoundError(systemID)
	}

	def, ok := sys.Definition(symbol)
	if !ok {
		return Resolution{}, unitserrors.NewUnitNotFoundError(symbol, systemID)
	}

	return Resolution{
		SystemID:     sys.ID,
		InternalUnit: sys.InternalUnit,
		Definition:   def,
		Conversion:   sys.Conversions[symbol],
	}, nil
}
