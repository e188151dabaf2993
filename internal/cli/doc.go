// Package cli defines the Cobra command tree for the extsrc CLI. Each file
// registers one command (or a closely related pair) with the root command.
// Commands open a session over the configured sources file, delegate to the
// registry, and save the result; they only handle argument parsing and
// output.
package cli
