// Package auth contains the session token and password hashing components.
// The TokenService signs and verifies the JWTs that travel in the `token` cookie,
// and the PasswordHasher wraps bcrypt. Both take their configuration (secret, cost)
// at construction so nothing here depends on process-wide state.
package auth
