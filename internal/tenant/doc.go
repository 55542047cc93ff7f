// Package tenant defines the identifier for a single registry partition,
// the sentinels used when a caller does not name one explicitly, and the
// derivation of a tenant from a record's numeric owner uid.
package tenant
