package registry

import (
	"strconv"
	"strings"

	"github.com/vk/provreg/internal/compid"
	"github.com/vk/provreg/internal/provider"
	"github.com/vk/provreg/internal/tenant"
)

// QueryAll is the literal query token selecting every record across the
// global scope and all tenants.
const QueryAll = "all"

// Find returns the records matching a query, in global-then-tenant order
// (ascending tenant id). The query is interpreted as, in order:
//
//   - the QueryAll token, selecting everything;
//   - a structured component identifier, matched exactly;
//   - a hex runtime-identity token, matching the single record it was
//     printed for in an earlier dump;
//   - otherwise a free-text substring of each record's string form.
//
// An empty result means no match; a query that parses as none of the above
// simply matches nothing.
func (r *Registry) Find(query string) []*provider.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	if query == QueryAll {
		return r.collectLocked(func(*provider.Record) bool { return true })
	}

	if id, err := compid.Parse(query); err == nil {
		return r.collectLocked(func(rec *provider.Record) bool {
			return rec.Component == id
		})
	}

	// Not a full component identifier; maybe an identity token? Hex wins
	// over substring so an id like "dead" printed by a dump stays usable.
	if identity, err := strconv.ParseUint(query, 16, 64); err == nil {
		return r.collectLocked(func(rec *provider.Record) bool {
			return rec.Identity() == identity
		})
	}

	return r.collectLocked(func(rec *provider.Record) bool {
		return strings.Contains(rec.String(), query)
	})
}

// collectLocked appends every record in the by-component indices that
// satisfies match, global scope first, then tenants in ascending id order.
// Unlike the aggregated mapping view, records are never collapsed by key.
// Callers must hold r.mu.
func (r *Registry) collectLocked(match func(*provider.Record) bool) []*provider.Record {
	var out []*provider.Record
	for _, id := range sortedComponentKeys(r.singletonByComponent) {
		if rec := r.singletonByComponent[id]; match(rec) {
			out = append(out, rec)
		}
	}
	for _, t := range r.tenantIDsLocked() {
		scope := r.byComponentPerTenant[t]
		for _, id := range sortedComponentKeys(scope) {
			if rec := scope[id]; match(rec) {
				out = append(out, rec)
			}
		}
	}
	return out
}

// tenantIDsLocked returns the materialized tenant ids of the by-component
// index in ascending order. Callers must hold r.mu.
func (r *Registry) tenantIDsLocked() []tenant.ID {
	ids := make([]tenant.ID, 0, len(r.byComponentPerTenant))
	for t := range r.byComponentPerTenant {
		ids = append(ids, t)
	}
	sortTenants(ids)
	return ids
}
