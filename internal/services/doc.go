// Package services contains the implementation of all services used by the web server.
//
// The services are responsible for interacting with the database and performing anything that is not strictly HTTP-related.
// The services are injected into the web server, and are used to handle requests dispatched by it.
//
// Current services include:
//   - UserService:
//     Is the main handler for dispatched http requests. It orchestrates the user store, the password
//     hasher and the token service for registration, login, profile updates and account deletion.
//   - EventService:
//     Is an AMQP 0.9.1 publisher that emits user lifecycle events to a durable queue for
//     downstream consumers. It is optional; the UserService runs without it.
package services
