package notification

import (
	"context"
	"fmt"
)

// Pusher delivers real-time events to connected clients. The Hub
// satisfies it; tests substitute a recorder.
type Pusher interface {
	Push(accountID int64, event *WSEvent)
}

type Service struct {
	repo   Repository
	pusher Pusher
}

func NewService(repo Repository, pusher Pusher) *Service {
	return &Service{repo: repo, pusher: pusher}
}

// NotifyPostCommented records a comment notification for the post
// creator and pushes it to their live connection if they have one.
func (s *Service) NotifyPostCommented(ctx context.Context, recipientID, actorID int64, postID, commentID string) error {
	n := &Notification{
		AccountID: recipientID,
		Type:      TypePostCommented,
		Title:     "New comment",
		Message:   "Someone commented on your post",
	}
	if err := n.SetData(&EventData{PostID: postID, CommentID: commentID, ActorID: actorID}); err != nil {
		return err
	}
	return s.deliver(ctx, n)
}

func (s *Service) NotifyPostLiked(ctx context.Context, recipientID, actorID int64, postID string) error {
	n := &Notification{
		AccountID: recipientID,
		Type:      TypePostLiked,
		Title:     "New like",
		Message:   "Someone liked your post",
	}
	if err := n.SetData(&EventData{PostID: postID, ActorID: actorID}); err != nil {
		return err
	}
	return s.deliver(ctx, n)
}

func (s *Service) deliver(ctx context.Context, n *Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	if s.pusher != nil {
		s.pusher.Push(n.AccountID, &WSEvent{Type: EventNewNotification, Payload: n})
	}
	return nil
}

func (s *Service) List(ctx context.Context, accountID int64, page, limit int) ([]*Notification, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByAccount(ctx, accountID, (page-1)*limit, limit)
}

func (s *Service) UnreadCount(ctx context.Context, accountID int64) (int64, error) {
	return s.repo.UnreadCount(ctx, accountID)
}

func (s *Service) MarkRead(ctx context.Context, id, accountID int64) error {
	return s.repo.MarkRead(ctx, id, accountID)
}

func (s *Service) MarkAllRead(ctx context.Context, accountID int64) error {
	return s.repo.MarkAllRead(ctx, accountID)
}
