// Package lcagents exposes module-level metadata shared by the CLI and
// the installer.
package lcagents

// Version is the current lcagents release. Stamped into runtime config at
// install time.
const Version = "0.3.0"
