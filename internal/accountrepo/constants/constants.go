package constants

const (
	// LoginsCollection is the collection/table holding the Account records.
	LoginsCollection = "web_logins"

	// Field names shared by both backends.
	FieldUsername = "username"
	FieldPassword = "password"
)
