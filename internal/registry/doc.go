// Package registry keeps track of provider records by authority name and by
// component identifier. It separates the mappings by tenant, except for
// singleton records, which live in a global scope visible to every tenant.
//
// The registry is a leaf component: it indexes record references supplied by
// the host process and never constructs, destroys, or validates them. Lookup
// always consults the global scope first, so a singleton record shadows any
// same-keyed tenant record. Absence is an ordinary outcome, never an error;
// the only failure surface is the diagnostic path, and even there failures
// degrade to inline text.
package registry
