// Package user contains the user record, the allowlist validator, and the Store implementations.
// The Store interface is implemented by UserManager against the MongoDB users collection and by
// MemoryStore in-process. Interaction is primarily by ID, as the ID will (almost always) be unique.
// BSON is used to interact with the database.
package user
