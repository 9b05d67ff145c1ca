// Package post stores immutable post records keyed by their allocated id.
// Timelines reference posts by id and never copy them.
package post

// Record is one published post. Immutable after creation.
type Record struct {
	ID             int64  `json:"id"`
	AuthorUserID   int64  `json:"author_user_id"`
	AuthorUsername string `json:"author_username"`
	Message        string `json:"message"`
	CreatedAtMs    int64  `json:"created_at_ms"`
}
