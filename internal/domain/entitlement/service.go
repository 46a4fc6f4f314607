package entitlement

import (
	"context"

	"pronet/internal/domain/account"
)

// AccountReader resolves accounts for quota decisions.
type AccountReader interface {
	GetByID(ctx context.Context, id int64) (*account.Account, error)
}

// Service is the quota gate: it decides whether an account may create
// another post before any upload work happens.
type Service struct {
	repo          Repository
	accounts      AccountReader
	freePostLimit int
}

func NewService(repo Repository, accounts AccountReader, freePostLimit int) *Service {
	return &Service{repo: repo, accounts: accounts, freePostLimit: freePostLimit}
}

// MayCreatePost returns nil when the account can create a post: either
// it holds an active entitlement, or its lifetime created-post count is
// below the free-tier ceiling. Returns a LimitError wrapping
// ErrQuotaExceeded otherwise.
func (s *Service) MayCreatePost(ctx context.Context, accountID int64) error {
	ent, err := s.repo.GetActiveByAccountID(ctx, accountID)
	if err != nil {
		return err
	}
	if ent != nil && ent.IsActive() {
		return nil
	}

	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if acc.CreatedPostCount >= int64(s.freePostLimit) {
		return &LimitError{
			Err:     ErrQuotaExceeded,
			Current: acc.CreatedPostCount,
			Limit:   s.freePostLimit,
		}
	}
	return nil
}
