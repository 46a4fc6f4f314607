package notification

import (
	"context"
	"log"
	"time"

	"pronet/internal/domain/post"
)

// PostResolver looks up the creator of a post for like events.
type PostResolver interface {
	GetByID(ctx context.Context, id string) (*post.Post, error)
}

// Dispatcher adapts the service to the fire-and-forget notifier
// interfaces the comment and like services expect. Every delivery runs
// in its own goroutine with a fresh deadline; failures are logged and
// never reach the triggering request.
type Dispatcher struct {
	svc   *Service
	posts PostResolver
}

func NewDispatcher(svc *Service, posts PostResolver) *Dispatcher {
	return &Dispatcher{svc: svc, posts: posts}
}

func (d *Dispatcher) PostCommented(recipientID, actorID int64, postID, commentID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.svc.NotifyPostCommented(ctx, recipientID, actorID, postID, commentID); err != nil {
			log.Printf("notify_post_commented_failed post_id=%s error=%q", postID, err)
		}
	}()
}

func (d *Dispatcher) PostLiked(postID string, likerID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		p, err := d.posts.GetByID(ctx, postID)
		if err != nil {
			log.Printf("notify_post_liked_lookup_failed post_id=%s error=%q", postID, err)
			return
		}
		if p.CreatorID == likerID {
			return
		}
		if err := d.svc.NotifyPostLiked(ctx, p.CreatorID, likerID, postID); err != nil {
			log.Printf("notify_post_liked_failed post_id=%s error=%q", postID, err)
		}
	}()
}
