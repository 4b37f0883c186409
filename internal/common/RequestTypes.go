// This file contains the expected structure of incoming requests to the API. These structs are
// populated from the `user` object of the request body after the allowlist validation has passed,
// and carry the schema-level constraints (required values, minimum password length).
//
// Note that all structs are independent of the user id. The id of the acting user is extracted
// from the token cookie, never from the body; the one exception is account deletion, where the
// original API contract requires the id to be repeated in the body.

package common

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=7"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateEmailRequest struct {
	Email string `json:"email" validate:"required"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=7"`
}

type DeleteUserRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password"`
}
