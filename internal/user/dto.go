package user

// CredentialsRequest is the request body for signup and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse represents a single user in API responses.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// SuggestionsResponse lists usernames the current user may want to follow.
type SuggestionsResponse struct {
	Usernames []string `json:"usernames"`
}

// ToResponse converts a User model to a UserResponse DTO.
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
	}
}
