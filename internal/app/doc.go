// Package app wires histkeeper together: it opens the local store, prepares
// the key store and builds the history service from a validated
// configuration. It also maps domain errors to the hints shown to users.
package app
