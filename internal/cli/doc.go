// Package cli implements the folio command-line client.
//
// Every command is a cobra subcommand of "folio". The "shell" command runs
// an interactive loop that dispatches each line to the same command tree
// while keeping one App alive, so like flags, cached comments and the login
// notice carry over between lines.
//
// Errors are shown to the user once, styled, by the command that hit them;
// Execute still returns them so the process exits non-zero.
package cli
