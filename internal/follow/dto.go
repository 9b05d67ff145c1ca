package follow

// FollowRequest is the request body for following a user.
type FollowRequest struct {
	Username string `json:"username" validate:"required"`
}

// RelationsResponse lists one side of a user's follow relations.
type RelationsResponse struct {
	Usernames []string `json:"usernames"`
}
