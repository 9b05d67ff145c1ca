package timeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tareqmn/microblog/internal/post"
)

// fanoutParallelism bounds how many follower appends run at once.
const fanoutParallelism = 8

// FollowerLister returns the current followers of a user.
type FollowerLister interface {
	Followers(ctx context.Context, username string) ([]string, error)
}

// Engine performs write-time fan-out. Publish is not idempotent: every
// call allocates a fresh post id and delivers it again.
type Engine struct {
	timelines *Repository
	posts     *post.Service
	graph     FollowerLister
	log       *logrus.Logger

	fanoutFailures atomic.Int64
}

// NewEngine creates a fan-out engine with its dependencies injected.
func NewEngine(timelines *Repository, posts *post.Service, graph FollowerLister, log *logrus.Logger) *Engine {
	return &Engine{timelines: timelines, posts: posts, graph: graph, log: log}
}

// Publish records the post and fans its id out. The publish succeeds once
// the record and the author's own timeline entry are durable; delivery to
// each follower is then attempted with bounded parallelism, and a failed
// follower append is logged and counted but never blocks the others or
// fails the publish.
//
// The follower set is a snapshot taken after the record is written; a
// follow edge created while the fan-out is in flight may or may not
// receive this post. That race is a documented property of the system,
// not something the engine synchronizes away.
func (e *Engine) Publish(ctx context.Context, authorUsername string, authorUserID int64, message string) (int64, error) {
	now := time.Now().UnixMilli()

	postID, err := e.posts.Create(ctx, authorUserID, authorUsername, message, now)
	if err != nil {
		return 0, err
	}

	// Self-delivery first: the author must always see their own post.
	if err := e.timelines.Push(ctx, authorUsername, postID); err != nil {
		return 0, err
	}

	followers, err := e.graph.Followers(ctx, authorUsername)
	if err != nil {
		e.fanoutFailures.Add(1)
		e.log.WithError(err).WithField("post_id", postID).
			Warn("follower snapshot failed, post delivered to author only")
		return postID, nil
	}

	var failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(fanoutParallelism)
	for _, follower := range followers {
		follower := follower
		g.Go(func() error {
			if err := e.timelines.Push(ctx, follower, postID); err != nil {
				failed.Add(1)
				e.log.WithError(err).WithFields(logrus.Fields{
					"post_id":  postID,
					"follower": follower,
				}).Warn("fan-out append failed")
			}
			return nil
		})
	}
	g.Wait()

	if n := failed.Load(); n > 0 {
		e.fanoutFailures.Add(n)
		e.log.WithFields(logrus.Fields{
			"post_id":   postID,
			"followers": len(followers),
			"failed":    n,
		}).Warn("publish propagated partially")
	}

	return postID, nil
}

// FanoutFailures reports how many follower deliveries have failed since
// the engine started.
func (e *Engine) FanoutFailures() int64 {
	return e.fanoutFailures.Load()
}
