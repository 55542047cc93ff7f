// Package diag implements the bounded fetch of extended diagnostic output
// from a provider's owning process. The remote side is reached through a
// narrow function value, so the package is independent of any transport.
// A fetch has exactly three outcomes: complete, transport failure, or
// timeout, and the caller can tell the last two apart.
package diag
