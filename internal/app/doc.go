// Package app loads configuration and wires application dependencies for
// the CLI.
//
// It builds the key-value store, API client, session, navigator and catalog
// from Config, exposing them via the Wire struct for commands to use. The
// navigator follows the session through a change subscription.
package app
