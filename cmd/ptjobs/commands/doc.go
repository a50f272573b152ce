// Package commands defines the ptjobs CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login           Sign in with username and password
//   - register        Create a candidate or company account
//   - logout          Forget the stored session
//   - whoami          Show the current session
//   - tabs            List the screens available to your role
//   - browse          Interactive screen navigator
//   - jobs, job       List job posts, show one
//   - company         Show a company with its jobs and reviews
//   - candidate       Show a candidate with their reviews
//   - post            Show one of your job posts with its applications
//   - notifications   Application status updates
//   - apply           Apply to a job with a resume (candidates)
//   - follow          Follow or unfollow a company (candidates)
//   - new-post        Publish a job post (companies)
//   - version         Print build information
//
// # Implementation
//
// The root command loads configuration, builds the dependency graph and
// restores the persisted session before any subcommand runs, so handlers
// share one app context.
package commands
