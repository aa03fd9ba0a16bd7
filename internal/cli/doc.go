// Package cli implements the hostdash command-line interface.
//
// The package is organized around Cobra commands, each delegating to a
// command function that loads config, configures logging and hands off to
// the monitor or metrics packages.
//
// # Command Structure
//
//	hostdash               - Full-screen dashboard (menu, detail views, live graph)
//	hostdash --graph       - Open directly in the live CPU graph
//	hostdash snapshot      - Print every metric once as YAML
//	hostdash doctor        - Check config, metric sources, nvidia-smi and the terminal
//	hostdash version       - Print build information
//
// # Global Flags
//
//	--config   Path to a config file (default search: ./.hostdash.yaml,
//	           then ~/.config/hostdash/config.yaml)
//	--debug    Write debug-level messages to the log file
//
// # Terminal Ownership
//
// The dashboard takes over the terminal with the alternate screen, so log
// output goes to log.file (or nowhere) rather than stderr. It refuses to start
// when stdin or stdout is not a terminal and points at the snapshot command
// instead.
//
// # Errors
//
// Commands return *errors.Error values. Execute renders them with
// ui.FormatError and exits with status 1.
package cli
