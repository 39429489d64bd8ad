package resolve

import (
	"errors"
	"fmt"
)

// ErrModuleNotFound is returned by a Loader when no module is known
// under the requested name. The resolver converts it into the
// ModuleNotFound sentinel; any other load error becomes ModuleTrouble.
var ErrModuleNotFound = errors.New("resolve: module not found")

// Loader obtains live module handles by name. Implementations may run
// arbitrary program code while loading.
type Loader interface {
	Load(name string) (Module, error)
}

// Factory constructs a live module handle. Factories run program code
// and are allowed to fail; the resolver treats a failure as trouble
// loading, not as a fatal condition.
type Factory func() (Module, error)

// FactoryLoader is the default Loader: a registry of named factories
// populated by the embedding program. It also supports a single
// observer, notified of every successful load, which the load tracker
// uses to record activity.
//
// FactoryLoader is not safe for concurrent use; reports are built
// single-threaded by design.
type FactoryLoader struct {
	factories map[string]Factory
	observer  func(name string)
}

// NewFactoryLoader creates an empty FactoryLoader.
func NewFactoryLoader() *FactoryLoader {
	return &FactoryLoader{factories: make(map[string]Factory)}
}

// Register adds a factory under name, replacing any previous one.
func (l *FactoryLoader) Register(name string, f Factory) {
	l.factories[name] = f
}

// SetObserver installs fn to be called with the name of every module
// successfully loaded from this point on. Passing nil removes the
// observer.
func (l *FactoryLoader) SetObserver(fn func(name string)) {
	l.observer = fn
}

// Observed reports whether an observer is currently installed.
func (l *FactoryLoader) Observed() bool {
	return l.observer != nil
}

// Load constructs the module registered under name. An unregistered
// name returns ErrModuleNotFound; a factory error is returned as-is.
func (l *FactoryLoader) Load(name string) (Module, error) {
	f, ok := l.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}
	m, err := f()
	if err != nil {
		return nil, err
	}
	if l.observer != nil {
		l.observer(name)
	}
	return m, nil
}
