package auth

// User is an administrative account able to sign into the system.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
}
