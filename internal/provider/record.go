package provider

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/vk/provreg/internal/compid"
	"github.com/vk/provreg/internal/tenant"
)

// Process is the interface a record's owning process must expose for
// diagnostics. The registry never manages process lifecycle; it only asks
// whether a live diagnostic endpoint exists and requests its output.
type Process interface {
	// PID returns the operating-system id of the owning process.
	PID() int

	// Live reports whether the process currently exposes a diagnostic
	// endpoint that can be asked for extended output.
	Live() bool

	// DumpDiagnostics streams the process's extended diagnostic output
	// into dst. It blocks until the stream is complete or fails; bounding
	// the wait is the caller's responsibility.
	DumpDiagnostics(dst io.Writer) error
}

// nextID hands out process-unique runtime identities for records. The
// identity shows up in dumps (in hex) so a later query can target exactly
// one record.
var nextID atomic.Uint64

// Record describes one published provider. A record is constructed once,
// filed into the registry under its keys, and removed by the same caller;
// the registry itself never creates or destroys records.
//
// Records are not internally synchronized. All fields are fixed at
// construction except Proc, which the host process updates while holding
// the registry's lock.
type Record struct {
	id uint64

	// Authority is the optional string key. It may hold several
	// ';'-separated segments; callers file each segment individually.
	Authority string

	// Component is the structured key identifying the implementing unit.
	Component compid.ID

	// Singleton marks the record as globally visible to every tenant,
	// bypassing per-tenant partitioning. Fixed at construction.
	Singleton bool

	// OwnerUID is the numeric owner identity the owning tenant is derived
	// from.
	OwnerUID int

	// Proc is the owning process, or nil while the provider is not
	// running. Used only by diagnostics.
	Proc Process
}

// New constructs a record and assigns its runtime identity.
func New(authority string, component compid.ID, singleton bool, ownerUID int) *Record {
	return &Record{
		id:        nextID.Add(1),
		Authority: authority,
		Component: component,
		Singleton: singleton,
		OwnerUID:  ownerUID,
	}
}

// Identity returns the record's process-unique runtime identity.
func (r *Record) Identity() uint64 {
	return r.id
}

// Tenant returns the tenant that owns this record, derived from the owner
// uid. The registry consults this only for non-singleton records.
func (r *Record) Tenant() tenant.ID {
	return tenant.FromUID(r.OwnerUID)
}

// String renders the short one-line form used throughout dumps. The hex
// token is the runtime identity and can be fed back to a find query.
func (r *Record) String() string {
	return fmt.Sprintf("ProviderRecord{%x t%d %s}", r.id, r.Tenant(), r.Component.ShortString())
}

// DumpTo writes the record's full state, one field per line, each line
// starting with prefix.
func (r *Record) DumpTo(w io.Writer, prefix string) {
	fmt.Fprintf(w, "%scomponent=%s\n", prefix, r.Component)
	if r.Authority != "" {
		fmt.Fprintf(w, "%sauthority=%s\n", prefix, r.Authority)
	}
	fmt.Fprintf(w, "%ssingleton=%t ownerUID=%d\n", prefix, r.Singleton, r.OwnerUID)
	if r.Proc != nil {
		fmt.Fprintf(w, "%sproc pid=%d live=%t\n", prefix, r.Proc.PID(), r.Proc.Live())
	}
}
