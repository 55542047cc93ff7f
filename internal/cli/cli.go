package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/provreg/internal/app"
	"github.com/vk/provreg/internal/diag"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app
// config, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("provreg", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
provreg - inspect a tenant-aware provider registry.

Usage:
  provreg [options] dump
  provreg [options] find QUERY

Commands:
  dump
    Print a snapshot of the whole registry.
  find QUERY
    Describe matching providers. QUERY is 'all', a component identifier
    (package/class), a hex identity token from an earlier dump, or a
    free-text substring.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to a manifest file or a directory of .hcl manifests.")
	mFlag := flagSet.String("m", "", "Path to a manifest file or directory (shorthand).")
	detailedFlag := flagSet.Bool("detailed", false, "Include per-record state and remote diagnostics in the output.")
	timeoutFlag := flagSet.Duration("timeout", diag.DefaultTimeout, "Bound on fetching one provider's remote diagnostics.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	manifestPath := *manifestFlag
	if manifestPath == "" {
		manifestPath = *mFlag
	}
	if manifestPath == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	command := app.CommandDump
	query := ""
	if flagSet.NArg() > 0 {
		command = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		query = flagSet.Arg(1)
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ManifestPath: manifestPath,
		Command:      command,
		Query:        query,
		Detailed:     *detailedFlag,
		Timeout:      *timeoutFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
