package tenant

// ID identifies one isolated partition of the registry. Non-negative values
// denote real tenants; the negative values below are sentinels and never
// address a scope directly.
type ID int

const (
	// Unset instructs the registry to resolve the acting tenant through its
	// configured Resolver instead of using an explicit value.
	Unset ID = -1

	// All selects the global scope plus every materialized tenant scope
	// during enumeration. It is not a valid lookup tenant.
	All ID = -2
)

// UIDRange is the size of the uid block assigned to each tenant. An owner
// uid of 310007 therefore belongs to tenant 3.
const UIDRange = 100000

// FromUID derives the owning tenant from a numeric owner uid.
func FromUID(uid int) ID {
	return ID(uid / UIDRange)
}

// Valid reports whether id denotes a real tenant rather than a sentinel.
func (id ID) Valid() bool {
	return id >= 0
}

// Resolver supplies the acting tenant whenever a caller passes Unset. The
// registry never guesses tenant membership itself; resolution is always
// delegated to the host process through this hook.
type Resolver func() ID
