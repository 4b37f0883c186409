package common

// Envelope is the JSON wrapper shape shared by every API response.
// Which payload fields are populated depends on the operation: `result`
// for the user listing, `user` for register/profile/update/delete, and
// `message` for failures.
type Envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Result  []UserInfo `json:"result,omitempty"`
	User    *UserInfo  `json:"user,omitempty"`
}

// UserInfo is the user payload as it appears on the wire. Register and list
// responses carry email and the stored password hash; profile and the update
// and delete confirmations carry only the id.
type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}
