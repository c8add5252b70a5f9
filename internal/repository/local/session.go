package local

import (
	"context"
	"fmt"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/repository"
	"carrental-portal/internal/storage"
)

var _ repository.SessionRepository = (*sessionRepository)(nil)

// sessionRepository reads the current_user record straight from the store on
// every call; it is small and owned by the sign-in flow, not by this view.
type sessionRepository struct {
	store *storage.Adapter
}

func (r *sessionRepository) Get(ctx context.Context) (*domain.CurrentUser, error) {
	user, ok := storage.ReadValue[domain.CurrentUser](ctx, r.store, storage.KeyCurrentUser)
	if !ok {
		return nil, fmt.Errorf("current user: %w", domain.ErrNotFound)
	}
	return user, nil
}

func (r *sessionRepository) Save(ctx context.Context, user *domain.CurrentUser) error {
	r.store.Write(ctx, storage.KeyCurrentUser, user)
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	r.store.Remove(ctx, storage.KeyCurrentUser)
	return nil
}
