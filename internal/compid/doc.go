/*
Package compid provides the structured, type-safe representation of a
provider's component identifier, based on the canonical format
`package/class`.

The class part may be written in the abbreviated form `.Suffix`, which
expands against the package, so `com.example.media/.MediaProvider` and
`com.example.media/com.example.media.MediaProvider` parse to the same
identifier.

This package enforces the identifier schema and centralizes all formatting
and parsing logic. An ID is comparable and is used directly as a map key.
*/
package compid
