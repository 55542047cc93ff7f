// Package manifest loads provider declarations from HCL files and seeds a
// registry with the resulting records. A manifest is the host process's way
// of publishing its static provider set; records registered at runtime go
// through the registry API directly and never touch this package.
package manifest
