// Package api provides the HTTP implementation of domain.AuthClient and
// domain.MarketplaceClient used by ptjobs.
//
// A Client with no token talks to the unauthenticated surface (the OAuth2
// token endpoint and user registration). WithToken returns a copy that
// attaches "Authorization: Bearer <token>" to every request.
//
// Supported operations include:
//   - Exchanging a username/password for an access token.
//   - Fetching the current user, and registering a new one.
//   - Reading job categories, job posts, companies, candidates and reviews.
//   - Applying to posts, following companies and publishing job posts.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx statuses are returned as *StatusError carrying the
// method, path, status and any server-provided detail. List endpoints accept
// both bare arrays and paginated {count,next,previous,results} envelopes.
package api
