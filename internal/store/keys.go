package store

import "strconv"

// Key namespace. These mirror the layout the service owns in the store:
// two counters, a username directory, and per-entity hashes, sets and
// lists.
const (
	// UserIDCounter feeds user id allocation.
	UserIDCounter = "userid"
	// PostIDCounter feeds post id allocation.
	PostIDCounter = "postid"
	// UsersKey is the hash mapping username -> user id.
	UsersKey = "users"
)

// UserKey is the hash holding one user record.
func UserKey(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

// PostKey is the hash holding one immutable post record.
func PostKey(postID int64) string {
	return "post:" + strconv.FormatInt(postID, 10)
}

// FollowingKey is the set of usernames the given user follows.
func FollowingKey(username string) string {
	return "following:" + username
}

// FollowersKey is the set of usernames following the given user.
func FollowersKey(username string) string {
	return "followers:" + username
}

// TimelineKey is the newest-first list of post ids delivered to the
// given user.
func TimelineKey(username string) string {
	return "timeline:" + username
}

// SessionKey is the hash holding one login session.
func SessionKey(token string) string {
	return "session:" + token
}
