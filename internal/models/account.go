package models

// Account represents a stored login record: an opaque store-assigned ID,
// the username and the password exactly as they were submitted.
type Account struct {
	ID       string `bson:"-" mapstructure:"id" db:"id"`
	Username string `bson:"username" mapstructure:"username" db:"username"`
	Password string `bson:"password" mapstructure:"password" db:"password"`
}

// NewAccount creates a new Account instance with the given credentials.
// Note: No validation is performed here.
func NewAccount(username string, password string) *Account {
	return &Account{
		Username: username,
		Password: password,
	}
}
