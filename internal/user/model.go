package user

// User represents a registered user. The id is the stable identity; the
// username is a unique, immutable lookup alias claimed at signup.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	CredentialHash string `json:"-"`
}
