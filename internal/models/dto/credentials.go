package dto

// CredentialsRequestDTO carries the username/password pair submitted on the
// login and signup forms. Bodies arrive either form-encoded or as JSON.
// Length is capped here so every record the store accepts can be found,
// verified and deleted again by the same fields.
type CredentialsRequestDTO struct {
	Username string `json:"username" form:"username" validate:"required,max=64"`
	Password string `json:"password" form:"password" validate:"required,max=64"`
}
