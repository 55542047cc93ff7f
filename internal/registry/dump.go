package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vk/provreg/internal/compid"
	"github.com/vk/provreg/internal/ctxlog"
	"github.com/vk/provreg/internal/diag"
	"github.com/vk/provreg/internal/provider"
	"github.com/vk/provreg/internal/tenant"
)

// DumpTo writes a human-readable snapshot of the registry: the global
// by-component entries, then each materialized tenant's by-component
// entries in ascending tenant-id order, and, when detailed, the
// by-authority mappings for the global scope and each tenant.
func (r *Registry) DumpTo(w io.Writer, detailed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.singletonByComponent) > 0 {
		fmt.Fprintln(w, "  Published global providers (by component):")
		dumpByComponent(w, r.singletonByComponent, detailed)
	}

	for _, t := range r.tenantIDsLocked() {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Published tenant %d providers (by component):\n", t)
		dumpByComponent(w, r.byComponentPerTenant[t], detailed)
	}

	if !detailed {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Global authority to provider mappings:")
	dumpByAuthority(w, r.singletonByAuthority)

	authorityTenants := make([]tenant.ID, 0, len(r.byAuthorityPerTenant))
	for t := range r.byAuthorityPerTenant {
		authorityTenants = append(authorityTenants, t)
	}
	sortTenants(authorityTenants)
	for _, t := range authorityTenants {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Tenant %d authority to provider mappings:\n", t)
		dumpByAuthority(w, r.byAuthorityPerTenant[t])
	}
}

func dumpByComponent(w io.Writer, m map[compid.ID]*provider.Record, detailed bool) {
	for _, id := range sortedComponentKeys(m) {
		rec := m[id]
		fmt.Fprintf(w, "  * %s\n", rec)
		if detailed {
			rec.DumpTo(w, "    ")
		}
	}
}

func dumpByAuthority(w io.Writer, m map[string]*provider.Record) {
	for _, name := range sortedAuthorityKeys(m) {
		fmt.Fprintf(w, "  %s: %s\n", name, m[name])
	}
}

// Describe writes the base description of one record: its string form and
// the owning-process pid, the full record state when detailed, and, when
// the process exposes a live diagnostic endpoint, the endpoint's extended
// output under a bounded wait.
//
// The structural lock covers only the in-memory part; the remote fetch runs
// outside it so an unresponsive peer never blocks other registry callers.
// A timeout or transport failure degrades to an inline note.
func (r *Registry) Describe(ctx context.Context, w io.Writer, rec *provider.Record, detailed bool, timeout time.Duration) {
	r.mu.Lock()
	fmt.Fprintf(w, "PROVIDER %s pid=", rec)
	proc := rec.Proc
	if proc != nil {
		fmt.Fprintln(w, proc.PID())
	} else {
		fmt.Fprintln(w, "(not running)")
	}
	if detailed {
		rec.DumpTo(w, "  ")
	}
	r.mu.Unlock()

	if proc == nil || !proc.Live() {
		return
	}

	fmt.Fprintln(w, "    Client:")
	err := diag.Fetch(w, proc.DumpDiagnostics, "      ", timeout)
	switch {
	case errors.Is(err, diag.ErrTimeout):
		fmt.Fprintln(w, "      Timed out waiting for provider diagnostics")
		ctxlog.FromContext(ctx).Warn("Provider diagnostics timed out.", "record", rec, "timeout", timeout)
	case err != nil:
		fmt.Fprintf(w, "      Failure while dumping the provider: %v\n", err)
		ctxlog.FromContext(ctx).Warn("Provider diagnostics failed.", "record", rec, "error", err)
	}
}

// DumpMatches describes every record matching query, separated by blank
// lines. It reports whether anything matched so the caller can render its
// own "no match" message.
func (r *Registry) DumpMatches(ctx context.Context, w io.Writer, query string, detailed bool, timeout time.Duration) bool {
	matches := r.Find(query)
	if len(matches) == 0 {
		return false
	}

	for i, rec := range matches {
		if i > 0 {
			fmt.Fprintln(w)
		}
		r.Describe(ctx, w, rec, detailed, timeout)
	}
	return true
}
