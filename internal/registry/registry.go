package registry

import (
	"log/slog"
	"sync"

	"github.com/vk/provreg/internal/compid"
	"github.com/vk/provreg/internal/provider"
	"github.com/vk/provreg/internal/tenant"
)

// Registry indexes provider records by authority name and by component
// identifier, partitioned into a global scope and lazily created per-tenant
// scopes. All four indices are views over the same record values.
//
// One mutex guards every index read and write. A lookup can race a lazy
// scope creation, so reads take the lock too. The only blocking work, the
// remote diagnostic fetch, happens outside it.
type Registry struct {
	mu      sync.Mutex
	resolve tenant.Resolver

	singletonByAuthority map[string]*provider.Record
	singletonByComponent map[compid.ID]*provider.Record

	byAuthorityPerTenant map[tenant.ID]map[string]*provider.Record
	byComponentPerTenant map[tenant.ID]map[compid.ID]*provider.Record
}

// New creates an empty registry. resolve supplies the acting tenant whenever
// an operation receives tenant.Unset; a nil resolver pins resolution to
// tenant 0.
func New(resolve tenant.Resolver) *Registry {
	if resolve == nil {
		resolve = func() tenant.ID { return 0 }
	}
	return &Registry{
		resolve:              resolve,
		singletonByAuthority: make(map[string]*provider.Record),
		singletonByComponent: make(map[compid.ID]*provider.Record),
		byAuthorityPerTenant: make(map[tenant.ID]map[string]*provider.Record),
		byComponentPerTenant: make(map[tenant.ID]map[compid.ID]*provider.Record),
	}
}

// ByAuthority looks up the record filed under an authority name. The global
// scope wins; otherwise the resolved tenant's scope is consulted. A nil
// result means the key is unmapped in both scopes.
func (r *Registry) ByAuthority(name string, t tenant.ID) *provider.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.singletonByAuthority[name]; ok {
		return rec
	}
	return r.authorityScope(t)[name]
}

// ByComponent looks up the record filed under a component identifier, with
// the same precedence as ByAuthority.
func (r *Registry) ByComponent(id compid.ID, t tenant.ID) *provider.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.singletonByComponent[id]; ok {
		return rec
	}
	return r.componentScope(t)[id]
}

// PutByAuthority files rec under an authority name. The key is supplied
// separately from rec.Authority so callers can file each ';'-separated
// segment individually. A singleton record goes into the global scope, any
// other into its owning tenant's scope, silently replacing an existing
// entry under the same key. No cross-scope uniqueness check is performed;
// if a caller files a tenant record under a globally held key, the global
// entry keeps winning every lookup.
func (r *Registry) PutByAuthority(name string, rec *provider.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.Singleton {
		slog.Debug("Filing global provider by authority.", "authority", name, "record", rec)
		r.singletonByAuthority[name] = rec
		return
	}
	t := rec.Tenant()
	slog.Debug("Filing tenant provider by authority.", "authority", name, "tenant", t, "record", rec)
	r.authorityScope(t)[name] = rec
}

// PutByComponent files rec under a component identifier, with the same
// scope selection as PutByAuthority.
func (r *Registry) PutByComponent(id compid.ID, rec *provider.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.Singleton {
		slog.Debug("Filing global provider by component.", "component", id, "record", rec)
		r.singletonByComponent[id] = rec
		return
	}
	t := rec.Tenant()
	slog.Debug("Filing tenant provider by component.", "component", id, "tenant", t, "record", rec)
	r.componentScope(t)[id] = rec
}

// RemoveByAuthority unfiles the record under an authority name. A global
// entry takes precedence and stops the removal there; otherwise the
// resolved tenant's scope is cleared. Removing an unmapped key is a no-op.
func (r *Registry) RemoveByAuthority(name string, t tenant.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.singletonByAuthority[name]; ok {
		slog.Debug("Removing global provider by authority.", "authority", name)
		delete(r.singletonByAuthority, name)
		return
	}
	slog.Debug("Removing tenant provider by authority.", "authority", name, "tenant", t)
	delete(r.authorityScope(t), name)
}

// RemoveByComponent unfiles the record under a component identifier, with
// the same precedence as RemoveByAuthority.
func (r *Registry) RemoveByComponent(id compid.ID, t tenant.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.singletonByComponent[id]; ok {
		slog.Debug("Removing global provider by component.", "component", id)
		delete(r.singletonByComponent, id)
		return
	}
	slog.Debug("Removing tenant provider by component.", "component", id, "tenant", t)
	delete(r.componentScope(t), id)
}

// ComponentsFor returns a snapshot of one scope's component mapping. The
// tenant.All sentinel aggregates the global scope plus every materialized
// tenant scope; a same-keyed collision across tenants keeps an arbitrary
// one, which is acceptable for the mapping view (enumeration of records
// goes through Find, which never collapses entries).
func (r *Registry) ComponentsFor(t tenant.ID) map[compid.ID]*provider.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[compid.ID]*provider.Record)
	if t == tenant.All {
		for id, rec := range r.singletonByComponent {
			out[id] = rec
		}
		for _, scope := range r.byComponentPerTenant {
			for id, rec := range scope {
				out[id] = rec
			}
		}
		return out
	}

	for id, rec := range r.componentScope(t) {
		out[id] = rec
	}
	return out
}

// resolveTenant maps the Unset sentinel (or any other non-tenant value) to
// the externally resolved acting tenant.
func (r *Registry) resolveTenant(t tenant.ID) tenant.ID {
	if t.Valid() {
		return t
	}
	return r.resolve()
}

// authorityScope returns the by-authority map for a tenant, creating it on
// first access. A materialized scope persists for the registry's lifetime.
// Callers must hold r.mu.
func (r *Registry) authorityScope(t tenant.ID) map[string]*provider.Record {
	t = r.resolveTenant(t)
	scope, ok := r.byAuthorityPerTenant[t]
	if !ok {
		scope = make(map[string]*provider.Record)
		r.byAuthorityPerTenant[t] = scope
	}
	return scope
}

// componentScope is authorityScope for the by-component index.
func (r *Registry) componentScope(t tenant.ID) map[compid.ID]*provider.Record {
	t = r.resolveTenant(t)
	scope, ok := r.byComponentPerTenant[t]
	if !ok {
		scope = make(map[compid.ID]*provider.Record)
		r.byComponentPerTenant[t] = scope
	}
	return scope
}
