// Package catalog serves the data behind each screen and the marketplace
// actions users take from them.
//
// Every call reads the current session for its bearer token. Detail queries
// given a zero id return placeholder records without touching the network.
package catalog
