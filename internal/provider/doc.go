// Package provider defines the record describing one running service
// endpoint, the keys it is addressed by, and the narrow interface to the
// process that owns it. The registry treats a record as an opaque value; the
// only properties it consults are the owning tenant and the singleton flag.
package provider
