package timeline

// PublishRequest is the request body for publishing a post.
type PublishRequest struct {
	Message string `json:"message" validate:"required"`
}

// PublishResponse returns the id of the published post.
type PublishResponse struct {
	PostID int64 `json:"post_id"`
}

// DisplayPost is one hydrated timeline entry.
type DisplayPost struct {
	Message        string `json:"message"`
	AuthorUsername string `json:"author_username"`
	RelativeAge    string `json:"relative_age"`
	CreatedAtMs    int64  `json:"created_at_ms"`
}

// TimelineResponse is the hydrated feed, newest first.
type TimelineResponse struct {
	Posts []DisplayPost `json:"posts"`
}
