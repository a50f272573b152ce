// Package mockapi is an in-memory implementation of the marketplace HTTP API
// used for local development and as the server side of integration tests.
//
// It serves the same paths as the production backend:
//
//	POST   /o/token/                      password grant, returns an HS256 JWT
//	POST   /users/                        register (no token in the reply)
//	GET    /users/current-user/           profile for the bearer token
//	GET    /job-categories/               bare array, ordered by name
//	GET    /jobposts/?q=&category_id=&company_id=&page=
//	POST   /jobposts/                     companies only
//	GET    /jobposts/{id}/
//	GET    /applications/?job_post=&page= own, or received as a company
//	POST   /applications/                 candidates only
//	GET    /applications/{id}/ and /applications/{id}/reviews/
//	GET    /candidates/{id}/ and /candidates/{id}/reviews/
//	GET    /companies/{id}/ and /companies/{id}/reviews/
//	GET    /company-images/?company_id= and /company-images/{id}/
//	GET    /following/, POST /following/, GET|DELETE /following/{id}/
//	GET    /resumes/ and /resumes/{id}/
//	GET    /reviews/{id}/
//	GET    /metrics, /healthz
//
// List endpoints under /jobposts/ and /applications/ are paginated with the
// {count, next, previous, results} envelope; others return bare arrays.
// Error bodies follow the backend: {"detail": ...} for auth and lookups,
// {"field": [...]} for validation, and OAuth error objects on /o/token/.
package mockapi
