// Package install wires an extracted build into the user's system.
//
// The Integrator interface has two variants: the launcher integration
// (default) generates a wrapper script that starts the IDE detached from the
// terminal, installs desktop entries and points the system symlink at the
// wrapper; the direct integration points the symlink straight at the
// application binary. Symlink maintenance under system paths goes through
// sudo, and every failure carries the manual command as remediation.
package install
