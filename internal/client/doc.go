// Package client contains a typed Go client for the user API. It mirrors what the browser
// front-end does with its fetch hook: JSON bodies in the {user: ...} envelope, the session
// token carried as a cookie, and failure envelopes surfaced as APIError values.
package client
