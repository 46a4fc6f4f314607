package post

import (
	"context"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pronet/internal/domain/like"
)

// MediaView is one media item on a denormalized post view.
type MediaView struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

// View is the read model handed to callers: the post plus its signed
// media URLs and like list.
type View struct {
	ID          string       `json:"id"`
	CreatorID   int64        `json:"creator_id"`
	Description string       `json:"description"`
	Media       []MediaView  `json:"media"`
	Likes       []*like.Like `json:"likes"`
	LikeCount   int          `json:"like_count"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Service coordinates the post lifecycle across the quota gate, the
// media registrar and the record store. The blob store and the record
// store share no transaction, so creation runs as a saga: each step
// commits locally and failure after media was persisted triggers a
// compensating media delete.
type Service struct {
	repo      Repository
	accounts  AccountResolver
	gate      QuotaGate
	registrar Registrar
	likes     LikeLister
}

func NewService(repo Repository, accounts AccountResolver, gate QuotaGate, registrar Registrar, likes LikeLister) *Service {
	return &Service{
		repo:      repo,
		accounts:  accounts,
		gate:      gate,
		registrar: registrar,
		likes:     likes,
	}
}

// Create publishes a post. Order matters: resolve creator, quota gate,
// media upload, post record, counter bump. Validation and quota
// failures return before anything is persisted; later failures
// compensate by deleting the media uploaded in this attempt. The caller
// always sees the original error, never a cleanup error.
func (s *Service) Create(ctx context.Context, creatorID int64, description string, files []*multipart.FileHeader) (*View, error) {
	if len(description) > MaxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}

	creator, err := s.accounts.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	if err := s.gate.MayCreatePost(ctx, creatorID); err != nil {
		return nil, err
	}

	mediaIDs, err := s.registrar.Upload(ctx, files, creatorID, creator.Kind)
	if err != nil {
		// A partial batch may have persisted some media already.
		s.compensate(ctx, mediaIDs)
		return nil, err
	}

	p := &Post{
		ID:          uuid.New().String(),
		CreatorID:   creatorID,
		Description: description,
	}
	if err := s.repo.Create(ctx, p, mediaIDs); err != nil {
		s.compensate(ctx, mediaIDs)
		return nil, err
	}

	if err := s.accounts.IncrementCreatedPosts(ctx, creatorID); err != nil {
		// The post exists; an under-counted quota is the lesser evil.
		log.Printf("post_counter_increment_failed account_id=%d post_id=%s error=%q", creatorID, p.ID, err)
	}

	return s.view(ctx, p, mediaIDs)
}

func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.loadView(ctx, p)
}

func (s *Service) List(ctx context.Context, page, limit int) ([]*View, error) {
	offset, limit := normalizePage(page, limit)
	posts, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.loadViews(ctx, posts)
}

func (s *Service) ListByCreator(ctx context.Context, creatorID int64, page, limit int) ([]*View, error) {
	offset, limit := normalizePage(page, limit)
	posts, err := s.repo.ListByCreator(ctx, creatorID, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.loadViews(ctx, posts)
}

// Update mutates the description only. The WHERE clause carries the
// creator check, so a foreign caller gets ErrPostNotFound.
func (s *Service) Update(ctx context.Context, id string, callerID int64, description string) (*View, error) {
	if len(description) > MaxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}
	if err := s.repo.UpdateDescription(ctx, id, callerID, description); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the post's media first, then soft-deletes the record.
// Media cleanup is best-effort: the visible entity wins over perfect
// blob hygiene, so partial cleanup failure never blocks the delete.
func (s *Service) Delete(ctx context.Context, id string, callerID int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.CreatorID != callerID {
		return ErrPostNotFound
	}

	mediaIDs, err := s.repo.MediaIDs(ctx, id)
	if err != nil {
		return err
	}
	if len(mediaIDs) > 0 {
		if err := s.registrar.Delete(ctx, mediaIDs); err != nil {
			log.Printf("post_media_cleanup_failed post_id=%s error=%q", id, err)
		}
	}

	return s.repo.SoftDelete(ctx, id, callerID)
}

func (s *Service) compensate(ctx context.Context, mediaIDs []string) {
	if len(mediaIDs) == 0 {
		return
	}
	if err := s.registrar.Delete(ctx, mediaIDs); err != nil {
		log.Printf("post_create_compensation_failed media_ids=%v error=%q", mediaIDs, err)
	}
}

func (s *Service) loadView(ctx context.Context, p *Post) (*View, error) {
	mediaIDs, err := s.repo.MediaIDs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, p, mediaIDs)
}

func (s *Service) loadViews(ctx context.Context, posts []*Post) ([]*View, error) {
	views := make([]*View, 0, len(posts))
	for _, p := range posts {
		v, err := s.loadView(ctx, p)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *Service) view(ctx context.Context, p *Post, mediaIDs []string) (*View, error) {
	records, err := s.registrar.Resolve(ctx, mediaIDs)
	if err != nil {
		return nil, err
	}

	// Sign URLs in parallel; a post can carry a handful of media and
	// each signature is independent.
	items := make([]MediaView, len(records))
	g, _ := errgroup.WithContext(ctx)
	for i, m := range records {
		g.Go(func() error {
			u, err := s.registrar.URL(m.BlobKey)
			if err != nil {
				return err
			}
			items[i] = MediaView{ID: m.ID, URL: u, MimeType: m.MimeType}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	likes, err := s.likes.ListByPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return &View{
		ID:          p.ID,
		CreatorID:   p.CreatorID,
		Description: p.Description,
		Media:       items,
		Likes:       likes,
		LikeCount:   len(likes),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func normalizePage(page, limit int) (offset, capped int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return (page - 1) * limit, limit
}
