// Package app contains the core application logic for the registry
// inspection tool. It defines the main App struct, its configuration, and
// the command lifecycle, decoupled from any specific entrypoint like a CLI.
package app
