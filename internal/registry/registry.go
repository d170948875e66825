// Package registry implements the Namespace Registry core component: the
// name→namespace mapping every ExecutionContext is built from, plus the
// shared cross-namespace dictionary threaded through all of them.
package registry

import "github.com/JungleDome/FirScript/internal/engine"

// DefaultNamespaceFactory builds the canonical set of namespace objects
// (ta, input, chart, color, strategy, data, log) given the shared map and
// register_defaults' two configuration parameters. Implemented in
// pkg/namespaces to keep this package free of domain-stack imports; wired
// in by whichever caller (cmd/firscript, tests) wants the defaults.
type DefaultNamespaceFactory func(shared map[string]any, inputOverrides map[string]any, columnMapping map[string]string) map[string]engine.Namespace

// Registry is a mapping from namespace name to namespace object, plus the
// `shared` dictionary passed by reference into every default namespace this
// registry constructs.
type Registry struct {
	shared     map[string]any
	namespaces map[string]engine.Namespace
}

// New constructs an empty Registry with a fresh shared map.
func New() *Registry {
	return &Registry{
		shared:     map[string]any{},
		namespaces: map[string]engine.Namespace{},
	}
}

// Shared returns the registry-owned mapping passed by reference to every
// namespace this registry builds; it is the only cross-namespace channel.
func (r *Registry) Shared() map[string]any { return r.shared }

// Register installs or replaces the namespace bound to name. Later calls
// with the same name override earlier ones. Registration never fails.
func (r *Registry) Register(name string, ns engine.Namespace) {
	r.namespaces[name] = ns
}

// RegisterDefaults installs the canonical namespace set using factory, which
// is expected to close over pkg/namespaces' constructors. Defaults are
// installed before any explicit Register call an embedder makes afterwards,
// so later Register calls win (Testable Property 10, override precedence).
func (r *Registry) RegisterDefaults(factory DefaultNamespaceFactory, inputOverrides map[string]any, columnMapping map[string]string) {
	defaults := factory(r.shared, inputOverrides, columnMapping)
	for name, ns := range defaults {
		r.namespaces[name] = ns
	}
}

// Get retrieves one namespace by name. The second return value is false
// when no namespace is registered under name; the caller decides whether
// that is fatal.
func (r *Registry) Get(name string) (engine.Namespace, bool) {
	ns, ok := r.namespaces[name]

	return ns, ok
}

// Build returns a fresh shallow-copied mapping suitable for handing to a new
// ExecutionContext; mutating the returned map never affects the registry.
func (r *Registry) Build() map[string]engine.Namespace {
	out := make(map[string]engine.Namespace, len(r.namespaces))
	for name, ns := range r.namespaces {
		out[name] = ns
	}

	return out
}

// GenerateOutputs collects GenerateOutput() from every namespace in ns that
// implements engine.OutputGenerator and returns a present value.
func (r *Registry) GenerateOutputs(ns map[string]engine.Namespace) map[string]any {
	out := map[string]any{}

	for name, n := range ns {
		gen, ok := n.(engine.OutputGenerator)
		if !ok {
			continue
		}

		if v, ok := gen.GenerateOutput(); ok {
			out[name] = v
		}
	}

	return out
}

// GenerateMetadatas is the engine.MetadataGenerator counterpart of
// GenerateOutputs.
func (r *Registry) GenerateMetadatas(ns map[string]engine.Namespace) map[string]any {
	out := map[string]any{}

	for name, n := range ns {
		gen, ok := n.(engine.MetadataGenerator)
		if !ok {
			continue
		}

		if v, ok := gen.GenerateMetadata(); ok {
			out[name] = v
		}
	}

	return out
}
