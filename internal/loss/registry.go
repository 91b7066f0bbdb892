package loss

import (
	"fmt"
	"sort"
	"sync"
)

// Config is a plain configuration mapping for building a loss. It must
// contain a "name" key selecting the registered loss; every other key is
// passed to the factory as a parameter.
type Config = map[string]any

// Params holds the constructor parameters extracted from a Config.
type Params map[string]any

// Factory constructs a Loss from configuration parameters.
type Factory func(params Params) (Loss, error)

// Float extracts a required numeric parameter.
//
// YAML and JSON decoders produce int, float64, or float32 for numeric
// scalars depending on how the value was written; all three are accepted.
func (p Params) Float(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, &ConfigError{Param: key, Err: ErrMissingParam}
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, &ConfigError{Param: key, Err: fmt.Errorf("%w: got %T, want number", ErrBadParam, v)}
	}
}

// FloatDefault extracts an optional numeric parameter, returning def when
// the key is absent. A present key with a non-numeric value is still an
// error.
func (p Params) FloatDefault(key string, def float64) (float64, error) {
	if _, ok := p[key]; !ok {
		return def, nil
	}
	return p.Float(key)
}

// Registry maps loss names to factory functions.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under name. Registering the same name twice
// returns ErrDuplicateLoss.
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return &ConfigError{Loss: name, Err: ErrDuplicateLoss}
	}
	r.factories[name] = factory
	return nil
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	return f, ok
}

// Build constructs a loss from a configuration mapping.
//
// The "name" key selects the factory; the remaining keys become its
// parameters. An unknown name returns ErrUnknownLoss.
func (r *Registry) Build(cfg Config) (Loss, error) {
	name, ok := cfg["name"].(string)
	if !ok || name == "" {
		return nil, &ConfigError{Err: ErrMissingName}
	}

	factory, ok := r.Lookup(name)
	if !ok {
		return nil, &ConfigError{Loss: name, Err: ErrUnknownLoss}
	}

	params := make(Params, len(cfg)-1)
	for k, v := range cfg {
		if k == "name" {
			continue
		}
		params[k] = v
	}

	l, err := factory(params)
	if err != nil {
		if cfgErr, ok := err.(*ConfigError); ok && cfgErr.Loss == "" {
			cfgErr.Loss = name
		}
		return nil, err
	}
	return l, nil
}

// Supported returns the sorted names of all registered losses.
func (r *Registry) Supported() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry holds the builtin losses plus any user registrations.
var defaultRegistry = NewRegistry()

func init() {
	builtins := map[string]Factory{
		"mse": func(Params) (Loss, error) { return NewMSE(), nil },
		"mae": func(Params) (Loss, error) { return NewMAE(), nil },
		"huber": func(params Params) (Loss, error) {
			delta, err := params.FloatDefault("delta", DefaultHuberDelta)
			if err != nil {
				return nil, err
			}
			return NewHuber(delta), nil
		},
		"cross_entropy": func(Params) (Loss, error) { return NewCrossEntropy(), nil },
		"focal": func(params Params) (Loss, error) {
			alpha, err := params.Float("alpha")
			if err != nil {
				return nil, err
			}
			gamma, err := params.FloatDefault("gamma", DefaultFocalGamma)
			if err != nil {
				return nil, err
			}
			return NewFocal(alpha, gamma), nil
		},
	}

	for name, factory := range builtins {
		if err := defaultRegistry.Register(name, factory); err != nil {
			panic(err.Error())
		}
	}
}

// Register adds a factory to the default registry.
func Register(name string, factory Factory) error {
	return defaultRegistry.Register(name, factory)
}

// Build constructs a loss from the default registry.
func Build(cfg Config) (Loss, error) {
	return defaultRegistry.Build(cfg)
}

// Lookup returns a factory from the default registry.
func Lookup(name string) (Factory, bool) {
	return defaultRegistry.Lookup(name)
}

// Supported returns the names registered in the default registry.
func Supported() []string {
	return defaultRegistry.Supported()
}
