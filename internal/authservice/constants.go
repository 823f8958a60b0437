package authservice

const (
	// Error messages for auth service operations
	ErrFailedToLookupAccount = "failed to look up account"
	ErrFailedToCreateAccount = "failed to create account"
	ErrFailedToVerifyLogin   = "failed to verify login"
	ErrFailedToDeleteAccount = "failed to delete account"
)
