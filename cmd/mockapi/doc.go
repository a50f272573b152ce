// Package main runs the in-memory marketplace API used by ptjobs during
// development and tests. It serves the OAuth2 password grant, the user
// endpoints and the job, company and application resources the client reads.
//
// Usage
//
//	mockapi --client-id cli --client-secret s3cret --signing-key dev-key
//
// Every flag may also be set from the environment with the PTJOBS_MOCKAPI_
// prefix, e.g. PTJOBS_MOCKAPI_CLIENT_SECRET. Data comes from the embedded
// fixtures unless --seed names a YAML file of the same shape.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Errors carry a {"detail": "..."} body, except the
//     token endpoint which answers in the OAuth2 error format.
//   - Each request is access-logged and counted; counters are served on
//     /metrics.
//   - The default listen address is :8000.
package main
