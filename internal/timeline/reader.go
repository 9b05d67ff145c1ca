package timeline

import (
	"context"
	"errors"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tareqmn/microblog/internal/post"
)

// DefaultWindow is how many entries a read returns when the caller does
// not ask for a specific limit.
const DefaultWindow = 100

// ErrEmptyUsername means the caller did not say whose timeline to read.
var ErrEmptyUsername = errors.New("username is required")

// Reader hydrates timeline entries into display records.
type Reader struct {
	timelines *Repository
	posts     *post.Service
}

// NewReader creates a timeline reader with its dependencies injected.
func NewReader(timelines *Repository, posts *post.Service) *Reader {
	return &Reader{timelines: timelines, posts: posts}
}

// Read returns up to limit of the user's most recent posts, newest first.
// Each entry is resolved against the post store at read time; an entry
// whose record is missing is skipped rather than failing the whole read.
// The relative age is computed against the wall clock of this call, so
// the same post ages across successive reads.
func (r *Reader) Read(ctx context.Context, username string, limit int) ([]DisplayPost, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if limit <= 0 || limit > DefaultWindow {
		limit = DefaultWindow
	}

	ids, err := r.timelines.Range(ctx, username, limit)
	if err != nil {
		return nil, err
	}

	posts := make([]DisplayPost, 0, len(ids))
	for _, id := range ids {
		rec, err := r.posts.Get(ctx, id)
		if err != nil {
			if errors.Is(err, post.ErrPostNotFound) {
				continue
			}
			return nil, err
		}
		posts = append(posts, DisplayPost{
			Message:        rec.Message,
			AuthorUsername: rec.AuthorUsername,
			RelativeAge:    humanize.Time(time.UnixMilli(rec.CreatedAtMs)),
			CreatedAtMs:    rec.CreatedAtMs,
		})
	}
	return posts, nil
}
